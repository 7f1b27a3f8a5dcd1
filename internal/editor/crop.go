package editor

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"retouch/pkg/geometry"
)

// MinCropSize is the smallest selection edge, in canvas pixels, accepted by
// the crop tool.
const MinCropSize = 10

// CropSession turns a pointer drag into a crop of the committed image. The
// selection rectangle lives in canvas space until the gesture completes;
// only then are the corners mapped to image space, clamped, and cut.
type CropSession struct {
	ctx    *Context
	start  geometry.Point2D
	end    geometry.Point2D
	active bool
}

// NewCropSession creates a crop session bound to ctx.
func NewCropSession(ctx *Context) *CropSession {
	return &CropSession{ctx: ctx}
}

// Kind returns ToolCrop.
func (s *CropSession) Kind() ToolKind {
	return ToolCrop
}

// Down anchors the selection rectangle.
func (s *CropSession) Down(p geometry.Point2D) {
	s.start = p
	s.end = p
	s.active = true
	s.ctx.pend(EventOverlayChanged)
}

// Move tracks the opposite corner of the selection rectangle.
func (s *CropSession) Move(p geometry.Point2D) {
	if !s.active {
		return
	}
	s.end = p
	s.ctx.pend(EventOverlayChanged)
}

// Up completes the selection. Gestures smaller than MinCropSize on either
// axis are rejected and leave the preview untouched. Otherwise the selection
// is normalized, mapped to image space, clamped to the committed bounds, and
// the preview is replaced by a new buffer holding exactly that sub-rectangle.
func (s *CropSession) Up(p geometry.Point2D) {
	if !s.active {
		return
	}
	s.end = p
	s.active = false
	s.ctx.pend(EventOverlayChanged)

	if math.Abs(s.end.X-s.start.X) < MinCropSize || math.Abs(s.end.Y-s.start.Y) < MinCropSize {
		s.ctx.pendErr(fmt.Errorf("crop: %w (need at least %dx%d canvas pixels)",
			ErrSelectionTooSmall, MinCropSize, MinCropSize))
		return
	}

	committed := s.ctx.buffers.Committed()
	if committed == nil {
		return
	}
	w := committed.Bounds().Dx()
	h := committed.Bounds().Dy()

	sel := geometry.RectFromPoints(s.start, s.end)
	x0, y0 := s.ctx.viewport.ToImageSpace(sel.X, sel.Y)
	x1, y1 := s.ctx.viewport.ToImageSpace(sel.X+sel.Width, sel.Y+sel.Height)

	x0 = clampInt(x0, 0, w)
	x1 = clampInt(x1, 0, w)
	y0 = clampInt(y0, 0, h)
	y1 = clampInt(y1, 0, h)
	if x1 <= x0 || y1 <= y0 {
		s.ctx.pendErr(fmt.Errorf("crop: %w (selection outside the image)", ErrSelectionTooSmall))
		return
	}

	cropped := imaging.Crop(committed, image.Rect(x0, y0, x1, y1))
	s.ctx.buffers.SetPreview(clone.AsRGBA(cropped))
	s.ctx.pend(EventPreviewChanged)
}

// Cancel clears the selection rectangle.
func (s *CropSession) Cancel() {
	s.active = false
	s.ctx.pend(EventOverlayChanged)
}

// Selection returns the current canvas-space selection rectangle while a
// drag is in progress.
func (s *CropSession) Selection() (geometry.Rect, bool) {
	if !s.active {
		return geometry.Rect{}, false
	}
	return geometry.RectFromPoints(s.start, s.end), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
