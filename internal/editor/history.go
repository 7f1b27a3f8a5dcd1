package editor

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// DefaultHistoryCapacity bounds how many committed snapshots are retained.
const DefaultHistoryCapacity = 10

// HistoryInfo summarizes the undo/redo state for display.
type HistoryInfo struct {
	Position int
	Total    int
	CanUndo  bool
	CanRedo  bool
}

// HistoryStack is a bounded, linear undo/redo stack of committed-image
// snapshots. The cursor position always satisfies -1 <= position <= len-1.
// Every stored snapshot is an independent copy; the stack never aliases a
// buffer a caller might later mutate, in either direction.
type HistoryStack struct {
	snapshots []*image.RGBA
	position  int
	capacity  int
}

// NewHistoryStack creates an empty stack. A non-positive capacity falls back
// to DefaultHistoryCapacity.
func NewHistoryStack(capacity int) *HistoryStack {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &HistoryStack{position: -1, capacity: capacity}
}

// Push records a new snapshot after the cursor. Any redo branch beyond the
// cursor is discarded first; when capacity is exceeded the oldest snapshot is
// evicted and the cursor shifted so it keeps referring to the same state.
func (h *HistoryStack) Push(snap *image.RGBA) {
	if h.position < len(h.snapshots)-1 {
		for i := h.position + 1; i < len(h.snapshots); i++ {
			h.snapshots[i] = nil
		}
		h.snapshots = h.snapshots[:h.position+1]
	}

	h.snapshots = append(h.snapshots, clone.AsRGBA(snap))
	h.position++

	if len(h.snapshots) > h.capacity {
		copy(h.snapshots, h.snapshots[1:])
		h.snapshots[len(h.snapshots)-1] = nil
		h.snapshots = h.snapshots[:len(h.snapshots)-1]
		h.position--
	}
}

// Undo moves the cursor one step back and returns a copy of the snapshot at
// the new position. Returns (nil, false) without side effects when there is
// nothing to undo.
func (h *HistoryStack) Undo() (*image.RGBA, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.position--
	return clone.AsRGBA(h.snapshots[h.position]), true
}

// Redo moves the cursor one step forward and returns a copy of the snapshot
// at the new position. Returns (nil, false) without side effects when there
// is nothing to redo.
func (h *HistoryStack) Redo() (*image.RGBA, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.position++
	return clone.AsRGBA(h.snapshots[h.position]), true
}

// CanUndo reports whether a state before the cursor exists.
func (h *HistoryStack) CanUndo() bool {
	return h.position > 0
}

// CanRedo reports whether a state after the cursor exists.
func (h *HistoryStack) CanRedo() bool {
	return h.position < len(h.snapshots)-1
}

// Clear empties the stack and resets the cursor.
func (h *HistoryStack) Clear() {
	h.snapshots = nil
	h.position = -1
}

// Info returns the current cursor position, total count and the undo/redo
// availability flags.
func (h *HistoryStack) Info() HistoryInfo {
	return HistoryInfo{
		Position: h.position,
		Total:    len(h.snapshots),
		CanUndo:  h.CanUndo(),
		CanRedo:  h.CanRedo(),
	}
}
