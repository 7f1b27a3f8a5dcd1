package editor

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

// gradient builds a w x h test image with a deterministic pixel pattern so
// content comparisons catch any corruption.
func gradient(w, h int) *image.RGBA {
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
	return img
}

func imagesEqual(a, b *image.RGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Bounds() != b.Bounds() {
		return false
	}
	return bytes.Equal(a.Pix, b.Pix)
}

func TestBuffersLoadSeedsAllSlots(t *testing.T) {
	var b EditBuffers
	if b.HasImage() {
		t.Fatal("fresh buffers claim to have an image")
	}

	src := gradient(20, 10)
	b.Load(src)

	if !b.HasImage() {
		t.Fatal("HasImage false after Load")
	}
	if !imagesEqual(b.Original(), src) || !imagesEqual(b.Committed(), src) || !imagesEqual(b.Preview(), src) {
		t.Error("slots do not match the loaded image")
	}
}

func TestBuffersNeverAlias(t *testing.T) {
	var b EditBuffers
	src := gradient(20, 10)
	b.Load(src)

	// The source stays independent of all three slots.
	src.SetRGBA(0, 0, color.RGBA{R: 250, A: 255})
	if b.Original().RGBAAt(0, 0).R == 250 {
		t.Error("original aliases the loaded source")
	}

	// Mutating preview must leave committed and original untouched.
	b.Preview().SetRGBA(1, 1, color.RGBA{R: 251, A: 255})
	if b.Committed().RGBAAt(1, 1).R == 251 {
		t.Error("preview aliases committed")
	}
	if b.Original().RGBAAt(1, 1).R == 251 {
		t.Error("preview aliases original")
	}

	// After a commit the new committed must again be independent storage.
	if err := b.CommitPreview(); err != nil {
		t.Fatalf("CommitPreview failed: %v", err)
	}
	b.Preview().SetRGBA(2, 2, color.RGBA{R: 252, A: 255})
	if b.Committed().RGBAAt(2, 2).R == 252 {
		t.Error("committed aliases preview after commit")
	}
}

func TestBuffersCommitBeforeLoadFails(t *testing.T) {
	var b EditBuffers
	if err := b.CommitPreview(); !errors.Is(err, ErrNoPreview) {
		t.Errorf("expected ErrNoPreview, got %v", err)
	}
}

func TestBuffersResetPreviewRestoresCommitted(t *testing.T) {
	var b EditBuffers
	b.Load(gradient(20, 10))

	b.Preview().SetRGBA(3, 3, color.RGBA{R: 9, A: 255})
	b.ResetPreview()

	if !imagesEqual(b.Preview(), b.Committed()) {
		t.Error("preview differs from committed after reset")
	}
	// And independently stored again.
	b.Preview().SetRGBA(4, 4, color.RGBA{R: 9, A: 255})
	if b.Committed().RGBAAt(4, 4).R == 9 {
		t.Error("reset produced an aliased preview")
	}
}

func TestBuffersRevertToOriginal(t *testing.T) {
	var b EditBuffers
	if err := b.RevertToOriginal(); !errors.Is(err, ErrNoOriginal) {
		t.Fatalf("expected ErrNoOriginal before load, got %v", err)
	}

	src := gradient(20, 10)
	b.Load(src)
	b.Preview().SetRGBA(0, 0, color.RGBA{R: 77, A: 255})
	if err := b.CommitPreview(); err != nil {
		t.Fatalf("CommitPreview failed: %v", err)
	}

	if err := b.RevertToOriginal(); err != nil {
		t.Fatalf("RevertToOriginal failed: %v", err)
	}
	if !imagesEqual(b.Committed(), src) || !imagesEqual(b.Preview(), src) {
		t.Error("revert did not restore the original content")
	}
}

func TestBuffersSetPreviewReplacesDimensions(t *testing.T) {
	var b EditBuffers
	b.Load(gradient(20, 10))

	small := gradient(5, 4)
	b.SetPreview(small)
	if got := b.Preview().Bounds(); got.Dx() != 5 || got.Dy() != 4 {
		t.Errorf("preview dimensions %dx%d, expected 5x4", got.Dx(), got.Dy())
	}
	if got := b.Committed().Bounds(); got.Dx() != 20 || got.Dy() != 10 {
		t.Errorf("committed dimensions changed to %dx%d", got.Dx(), got.Dy())
	}

	// ResetPreview restores the committed dimensions.
	b.ResetPreview()
	if got := b.Preview().Bounds(); got.Dx() != 20 || got.Dy() != 10 {
		t.Errorf("reset preview dimensions %dx%d, expected 20x10", got.Dx(), got.Dy())
	}
}
