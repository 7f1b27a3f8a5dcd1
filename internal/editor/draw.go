package editor

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"retouch/pkg/geometry"
)

// BaseStrokeWidth is the default stroke width of the draw tool in canvas
// pixels. The image-space width is scaled by the viewport ratio so the
// stroke keeps a consistent apparent width at any display scale.
const BaseStrokeWidth = 2

// DrawSession freehand-draws into the preview buffer. Every pointer movement
// produces two lines: a canvas-space overlay segment for immediate feedback
// and the equivalent image-space segment rendered into the preview.
type DrawSession struct {
	ctx   *Context
	color color.NRGBA
	width float64

	last     geometry.Point2D
	down     bool
	segments []Stroke
	dc       *gg.Context
}

// NewDrawSession creates a draw session bound to ctx using the given stroke
// color and the default width.
func NewDrawSession(ctx *Context, c color.NRGBA) *DrawSession {
	return &DrawSession{ctx: ctx, color: c, width: BaseStrokeWidth}
}

// Kind returns ToolDraw.
func (s *DrawSession) Kind() ToolKind {
	return ToolDraw
}

// SetColor changes the stroke color for subsequent gestures.
func (s *DrawSession) SetColor(c color.NRGBA) {
	s.color = c
}

// Color returns the current stroke color.
func (s *DrawSession) Color() color.NRGBA {
	return s.color
}

// SetWidth changes the canvas-space stroke width for subsequent gestures.
// Widths below one pixel are ignored.
func (s *DrawSession) SetWidth(w float64) {
	if w >= 1 {
		s.width = w
	}
}

// Width returns the canvas-space stroke width.
func (s *DrawSession) Width() float64 {
	return s.width
}

// Down starts a stroke: records the anchor point and resets the overlay
// segment list from any previous gesture.
func (s *DrawSession) Down(p geometry.Point2D) {
	preview := s.ctx.buffers.Preview()
	if preview == nil {
		return
	}
	s.last = p
	s.down = true
	s.segments = s.segments[:0]
	s.dc = gg.NewContextForRGBA(preview)
	s.ctx.pend(EventOverlayChanged)
}

// Move extends the stroke to p, drawing both the overlay segment and the
// image-space line.
func (s *DrawSession) Move(p geometry.Point2D) {
	if !s.down || s.dc == nil {
		return
	}

	s.segments = append(s.segments, Stroke{
		A:     s.last,
		B:     p,
		Color: s.color,
		Width: s.width,
	})

	x0, y0 := s.ctx.viewport.ToImageSpace(s.last.X, s.last.Y)
	x1, y1 := s.ctx.viewport.ToImageSpace(p.X, p.Y)

	width := math.Round(s.ctx.viewport.Scale * s.width)
	if width < 1 {
		width = 1
	}

	s.dc.SetColor(s.color)
	s.dc.SetLineWidth(width)
	s.dc.SetLineCapRound()
	s.dc.DrawLine(float64(x0), float64(y0), float64(x1), float64(y1))
	s.dc.Stroke()

	s.last = p
	s.ctx.pend(EventOverlayChanged)
	s.ctx.pend(EventPreviewChanged)
}

// Up finishes the stroke.
func (s *DrawSession) Up(p geometry.Point2D) {
	if !s.down {
		return
	}
	s.Move(p)
	s.down = false
	s.dc = nil
}

// Cancel discards the overlay segments and gesture state. Strokes already
// rendered into the preview are the commit controller's to keep or discard.
func (s *DrawSession) Cancel() {
	s.down = false
	s.dc = nil
	s.segments = nil
	s.ctx.pend(EventOverlayChanged)
}

// Segments returns the overlay segments of the current gesture.
func (s *DrawSession) Segments() []Stroke {
	out := make([]Stroke, len(s.segments))
	copy(out, s.segments)
	return out
}
