package editor

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// EditBuffers owns the three image slots of the edit model.
//
//   - original is set once per load, never mutated afterwards, and survives
//     Revert.
//   - committed is the last user-accepted state, replaced only by the commit
//     transitions (apply, revert, undo, redo, load).
//   - preview is the scratch buffer the active tool mutates during a gesture,
//     reseeded from committed at session start.
//
// The slots never share backing storage: every slot assignment goes through
// an independent copy, so mutating one buffer cannot alias another.
type EditBuffers struct {
	original  *image.RGBA
	committed *image.RGBA
	preview   *image.RGBA
}

// Load seeds all three slots with independent copies of img.
func (b *EditBuffers) Load(img image.Image) {
	b.original = clone.AsRGBA(img)
	b.committed = clone.AsRGBA(img)
	b.preview = clone.AsRGBA(img)
}

// HasImage reports whether an image has been loaded.
func (b *EditBuffers) HasImage() bool {
	return b.original != nil
}

// Original returns the as-loaded buffer. Callers must not mutate it.
func (b *EditBuffers) Original() *image.RGBA {
	return b.original
}

// Committed returns the last accepted buffer. Callers must not mutate it.
func (b *EditBuffers) Committed() *image.RGBA {
	return b.committed
}

// Preview returns the scratch buffer. Only the active tool session may
// mutate it, and only within its own gesture.
func (b *EditBuffers) Preview() *image.RGBA {
	return b.preview
}

// BeginPreview reseeds preview with a copy of committed. A no-op before the
// first load.
func (b *EditBuffers) BeginPreview() {
	if b.committed == nil {
		return
	}
	b.preview = clone.AsRGBA(b.committed)
}

// SetPreview replaces the preview buffer wholesale. The buffer passed in must
// be freshly allocated; SetPreview takes ownership and does not copy.
func (b *EditBuffers) SetPreview(img *image.RGBA) {
	b.preview = img
}

// CommitPreview copies preview into committed. Preview keeps its content so
// a still-bound session continues from the state it just committed.
func (b *EditBuffers) CommitPreview() error {
	if b.preview == nil {
		return ErrNoPreview
	}
	b.committed = clone.AsRGBA(b.preview)
	return nil
}

// ResetPreview discards in-progress edits by copying committed back over
// preview. A no-op copy at worst; before the first load both slots stay nil.
func (b *EditBuffers) ResetPreview() {
	if b.committed == nil {
		return
	}
	b.preview = clone.AsRGBA(b.committed)
}

// RevertToOriginal restores committed and preview from the as-loaded image.
func (b *EditBuffers) RevertToOriginal() error {
	if b.original == nil {
		return ErrNoOriginal
	}
	b.committed = clone.AsRGBA(b.original)
	b.preview = clone.AsRGBA(b.original)
	return nil
}

// Restore replaces committed and preview with independent copies of snap,
// used when history hands back a snapshot.
func (b *EditBuffers) Restore(snap *image.RGBA) {
	b.committed = clone.AsRGBA(snap)
	b.preview = clone.AsRGBA(snap)
}
