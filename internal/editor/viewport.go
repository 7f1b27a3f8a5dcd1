package editor

import (
	"fmt"
	"math"
)

// Display layout defaults. The canvas never shrinks below the default size;
// an image larger than the available area is scaled down to fit inside the
// canvas minus padding, never up.
const (
	DefaultCanvasWidth  = 900
	DefaultCanvasHeight = 700
	CanvasPadding       = 100
)

// ViewportState describes how the preview buffer is presented on the canvas:
// scaled to DisplayWidth x DisplayHeight and centered at (OffsetX, OffsetY)
// inside a CanvasWidth x CanvasHeight logical canvas. Scale expresses how
// many source pixels one canvas pixel spans, so Scale >= 1 always.
//
// A ViewportState is recomputed on every (re)display and consumed by the
// coordinate mapping methods until the next recompute.
type ViewportState struct {
	Scale         float64
	OffsetX       int
	OffsetY       int
	DisplayWidth  int
	DisplayHeight int
	CanvasWidth   int
	CanvasHeight  int
}

// ComputeViewport fits a sourceW x sourceH image into a maxW x maxH canvas
// budget leaving padding pixels of margin. The image is scaled down
// preserving aspect ratio when it does not fit and displayed at native size
// when it does. Scale is always derived from the height ratio, matching the
// display convention used by the coordinate mapping.
func ComputeViewport(sourceW, sourceH, maxW, maxH, padding int) (ViewportState, error) {
	if sourceW <= 0 || sourceH <= 0 {
		return ViewportState{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, sourceW, sourceH)
	}

	availW := maxW - padding
	availH := maxH - padding

	newW, newH := sourceW, sourceH
	if sourceH > availH || sourceW > availW {
		aspect := float64(sourceH) / float64(sourceW)
		if aspect < 1 {
			// Landscape: fit the width first, then refit if the height
			// budget is still exceeded.
			newW = availW
			newH = int(float64(newW) * aspect)
			if newH > availH {
				newH = availH
				newW = int(float64(newH) / aspect)
			}
		} else {
			newH = availH
			newW = int(float64(newH) / aspect)
			if newW > availW {
				newW = availW
				newH = int(float64(newW) * aspect)
			}
		}
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	canvasW := newW + padding
	if canvasW < DefaultCanvasWidth {
		canvasW = DefaultCanvasWidth
	}
	canvasH := newH + padding
	if canvasH < DefaultCanvasHeight {
		canvasH = DefaultCanvasHeight
	}

	return ViewportState{
		Scale:         float64(sourceH) / float64(newH),
		OffsetX:       canvasW/2 - newW/2,
		OffsetY:       canvasH/2 - newH/2,
		DisplayWidth:  newW,
		DisplayHeight: newH,
		CanvasWidth:   canvasW,
		CanvasHeight:  canvasH,
	}, nil
}

// ToImageSpace converts a canvas-space point to source-image pixel
// coordinates. No clamping is performed; callers clamp to image bounds
// before indexing.
func (v ViewportState) ToImageSpace(canvasX, canvasY float64) (int, int) {
	imgX := int(math.Round((canvasX - float64(v.OffsetX)) * v.Scale))
	imgY := int(math.Round((canvasY - float64(v.OffsetY)) * v.Scale))
	return imgX, imgY
}

// ToCanvasSpace converts source-image pixel coordinates to canvas space.
// Round-tripping through ToImageSpace reproduces the input within one pixel;
// the rounding error is inherent to the integer mapping.
func (v ViewportState) ToCanvasSpace(imgX, imgY int) (float64, float64) {
	canvasX := math.Round(float64(imgX)/v.Scale) + float64(v.OffsetX)
	canvasY := math.Round(float64(imgY)/v.Scale) + float64(v.OffsetY)
	return canvasX, canvasY
}
