// Package imageio provides image file loading and saving for the editor.
package imageio

import (
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"retouch/internal/editor"
)

// DefaultJPEGQuality is used when the caller supplies no quality setting.
const DefaultJPEGQuality = 95

var (
	// loadFormats lists every extension the decoder accepts.
	loadFormats = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

	// saveFormats lists every extension the encoder accepts.
	// TIFF input is accepted on load but re-encoded to one of these.
	saveFormats = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}
)

// LoadFormats returns the extensions accepted by Load.
func LoadFormats() []string {
	return append([]string(nil), loadFormats...)
}

// SaveFormats returns the extensions accepted by Save.
func SaveFormats() []string {
	return append([]string(nil), saveFormats...)
}

// IsLoadFormat checks if the given path has an extension accepted by Load.
func IsLoadFormat(path string) bool {
	return hasFormat(path, loadFormats)
}

// IsSaveFormat checks if the given path has an extension accepted by Save.
func IsSaveFormat(path string) bool {
	return hasFormat(path, saveFormats)
}

func hasFormat(path string, formats []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range formats {
		if ext == format {
			return true
		}
	}
	return false
}

// Load reads and decodes the image at the specified path. A failed load
// never touches editor state; callers hand the result to the edit context
// only on success.
func Load(path string) (image.Image, error) {
	if !IsLoadFormat(path) {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), editor.ErrUnsupportedFormat)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %v", filepath.Base(path), editor.ErrIOFailure, err)
	}

	return img, nil
}

// Save encodes img to path, selecting the format from the file extension.
// JPEG output uses the given quality (1-100, 0 means DefaultJPEGQuality);
// PNG output uses best compression.
func Save(path string, img image.Image, jpegQuality int) error {
	if img == nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), editor.ErrNoOriginal)
	}
	if !IsSaveFormat(path) {
		return fmt.Errorf("save %s: %w", filepath.Base(path), editor.ErrUnsupportedFormat)
	}
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}

	err := imaging.Save(img, path,
		imaging.JPEGQuality(jpegQuality),
		imaging.PNGCompressionLevel(png.BestCompression))
	if err != nil {
		return fmt.Errorf("save %s: %w: %v", filepath.Base(path), editor.ErrIOFailure, err)
	}

	return nil
}

// EnsureSaveExtension appends a default .png extension when the chosen
// save path has none. Save dialogs let users type bare names.
func EnsureSaveExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".png"
	}
	return path
}
