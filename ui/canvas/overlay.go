package canvas

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"retouch/internal/editor"
	"retouch/pkg/geometry"
)

// Overlay styling. The frame uses the theme accent blue; the crop marquee
// the apply green.
var (
	borderColor    = color.NRGBA{R: 0x34, G: 0x98, B: 0xDB, A: 0xFF}
	selectionColor = color.NRGBA{R: 0x2E, G: 0xCC, B: 0x71, A: 0xFF}
)

const borderWidth = 2

// drawImageBorder strokes the frame around the displayed image area.
func drawImageBorder(output *image.RGBA, v editor.ViewportState) {
	dc := gg.NewContextForRGBA(output)
	dc.SetColor(borderColor)
	dc.SetLineWidth(borderWidth)
	dc.DrawRectangle(
		float64(v.OffsetX-borderWidth),
		float64(v.OffsetY-borderWidth),
		float64(v.DisplayWidth+2*borderWidth),
		float64(v.DisplayHeight+2*borderWidth),
	)
	dc.Stroke()
}

// drawStrokes renders the live canvas-space segments of the current draw
// gesture. The same segments already landed in the preview at image scale;
// these give unscaled feedback until the next preview rescale.
func drawStrokes(output *image.RGBA, strokes []editor.Stroke) {
	dc := gg.NewContextForRGBA(output)
	dc.SetLineCapRound()
	for _, s := range strokes {
		dc.SetColor(s.Color)
		dc.SetLineWidth(s.Width)
		dc.DrawLine(s.A.X, s.A.Y, s.B.X, s.B.Y)
		dc.Stroke()
	}
}

// drawSelection renders the dashed crop marquee.
func drawSelection(output *image.RGBA, sel geometry.Rect) {
	dc := gg.NewContextForRGBA(output)
	dc.SetColor(selectionColor)
	dc.SetLineWidth(2)
	dc.SetDash(4, 2)
	dc.DrawRectangle(sel.X, sel.Y, sel.Width, sel.Height)
	dc.Stroke()
}
