package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"retouch/internal/editor"
)

// writeTestPNG encodes a small deterministic image under dir and returns
// its path.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestFormatChecks(t *testing.T) {
	tests := []struct {
		path string
		load bool
		save bool
	}{
		{"photo.jpg", true, true},
		{"photo.JPEG", true, true},
		{"shot.png", true, true},
		{"scan.bmp", true, true},
		{"anim.gif", true, true},
		{"scan.tif", true, false},
		{"scan.tiff", true, false},
		{"notes.txt", false, false},
		{"noext", false, false},
	}

	for _, tt := range tests {
		if got := IsLoadFormat(tt.path); got != tt.load {
			t.Errorf("IsLoadFormat(%q) = %v, want %v", tt.path, got, tt.load)
		}
		if got := IsSaveFormat(tt.path); got != tt.save {
			t.Errorf("IsSaveFormat(%q) = %v, want %v", tt.path, got, tt.save)
		}
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load("document.txt")
	if !errors.Is(err, editor.ErrUnsupportedFormat) {
		t.Fatalf("Load of .txt returned %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.png"))
	if !errors.Is(err, editor.ErrIOFailure) {
		t.Fatalf("Load of missing file returned %v, want ErrIOFailure", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, editor.ErrIOFailure) {
		t.Fatalf("Load of corrupt file returned %v, want ErrIOFailure", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPNG(t, dir, "src.png", 32, 24)

	img, err := Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Fatalf("loaded size %dx%d, want 32x24", b.Dx(), b.Dy())
	}

	// Re-encode through each writable format and reload.
	for _, ext := range SaveFormats() {
		out := filepath.Join(dir, "out"+ext)
		if err := Save(out, img, 0); err != nil {
			t.Errorf("Save %s: %v", ext, err)
			continue
		}
		back, err := Load(out)
		if err != nil {
			t.Errorf("reload %s: %v", ext, err)
			continue
		}
		if b := back.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("%s round trip size %dx%d, want 32x24", ext, b.Dx(), b.Dy())
		}
	}
}

func TestSaveRejectsTIFF(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	err := Save(filepath.Join(t.TempDir(), "out.tif"), img, 0)
	if !errors.Is(err, editor.ErrUnsupportedFormat) {
		t.Fatalf("Save to .tif returned %v, want ErrUnsupportedFormat", err)
	}
}

func TestSaveNilImage(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "out.png"), nil, 0)
	if !errors.Is(err, editor.ErrNoOriginal) {
		t.Fatalf("Save of nil image returned %v, want ErrNoOriginal", err)
	}
}

func TestSaveUnwritableDirectory(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	err := Save(filepath.Join(t.TempDir(), "no", "such", "dir", "out.png"), img, 0)
	if !errors.Is(err, editor.ErrIOFailure) {
		t.Fatalf("Save into missing directory returned %v, want ErrIOFailure", err)
	}
}

func TestEnsureSaveExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shot", "shot.png"},
		{"shot.jpg", "shot.jpg"},
		{"dir/name", "dir/name.png"},
		{"archive.tar", "archive.tar"},
	}

	for _, tt := range tests {
		if got := EnsureSaveExtension(tt.in); got != tt.want {
			t.Errorf("EnsureSaveExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
