package editor

import (
	"image/color"

	"retouch/pkg/geometry"
)

// ToolKind identifies the interactive pointer tools.
type ToolKind int

const (
	ToolCrop ToolKind = iota
	ToolDraw
	ToolText
)

func (k ToolKind) String() string {
	switch k {
	case ToolCrop:
		return "Crop"
	case ToolDraw:
		return "Draw"
	case ToolText:
		return "Text"
	default:
		return "Unknown"
	}
}

// PointerHandler is the contract every interactive tool session implements.
// Exactly one session is bound at a time: Context.BeginSession cancels and
// unbinds the previous session before binding the next, so no two sessions
// ever mutate the preview concurrently.
//
// All coordinates are canvas space; sessions translate them to image space
// through the context's current ViewportState. The context invokes the
// handler methods with its lock held, so handlers use the unexported context
// internals rather than the locking API.
type PointerHandler interface {
	Kind() ToolKind

	// Down starts a gesture at the given canvas point.
	Down(p geometry.Point2D)

	// Move extends the gesture. Called only between Down and Up.
	Move(p geometry.Point2D)

	// Up completes the gesture.
	Up(p geometry.Point2D)

	// Cancel discards the session's transient state (selection rectangle,
	// overlay strokes) without touching the preview buffer; buffer recovery
	// is the commit controller's concern.
	Cancel()
}

// Stroke is one canvas-space overlay segment published by a draw gesture for
// immediate feedback while the image-space stroke lands in the preview.
type Stroke struct {
	A     geometry.Point2D
	B     geometry.Point2D
	Color color.NRGBA
	Width float64
}
