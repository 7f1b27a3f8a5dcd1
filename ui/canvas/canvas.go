// Package canvas provides the editing canvas with live preview rendering.
package canvas

import (
	"image"
	"image/draw"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/disintegration/imaging"

	"retouch/internal/editor"
	"retouch/pkg/geometry"
)

// EditorCanvas displays the preview buffer fitted and centered in the
// available area and forwards pointer gestures to the active tool session.
// Canvas coordinates are the widget's own coordinates; the published
// ViewportState carries the mapping to image space.
type EditorCanvas struct {
	widget.BaseWidget

	ctx *editor.Context

	raster  *fynecanvas.Raster
	content *draggableContent

	lastSize fyne.Size

	// Scaled preview cache, rebuilt when the preview content or the
	// display size changes.
	scaled      *image.NRGBA
	scaledStale bool
}

// NewEditorCanvas creates the canvas bound to the given edit context and
// subscribes it to redraw events.
func NewEditorCanvas(ctx *editor.Context) *EditorCanvas {
	ec := &EditorCanvas{
		ctx:         ctx,
		scaledStale: true,
	}

	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.raster.SetMinSize(fyne.NewSize(editor.DefaultCanvasWidth, editor.DefaultCanvasHeight))

	ec.content = newDraggableContent(ec, ec.raster)

	ec.ExtendBaseWidget(ec)

	ctx.On(editor.EventImageLoaded, func(interface{}) {
		ec.scaledStale = true
		ec.recomputeViewport()
		ec.Refresh()
	})
	ctx.On(editor.EventPreviewChanged, func(interface{}) {
		ec.scaledStale = true
		ec.recomputeViewport()
		ec.Refresh()
	})
	ctx.On(editor.EventOverlayChanged, func(interface{}) {
		ec.Refresh()
	})

	return ec
}

// Refresh redraws the canvas contents.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

// recomputeViewport fits the current preview into the widget area and
// publishes the resulting layout to the context.
func (ec *EditorCanvas) recomputeViewport() {
	preview := ec.ctx.PreviewImage()
	if preview == nil {
		return
	}

	cw := int(ec.lastSize.Width)
	if cw < editor.DefaultCanvasWidth {
		cw = editor.DefaultCanvasWidth
	}
	ch := int(ec.lastSize.Height)
	if ch < editor.DefaultCanvasHeight {
		ch = editor.DefaultCanvasHeight
	}

	b := preview.Bounds()
	v, err := editor.ComputeViewport(b.Dx(), b.Dy(), cw, ch, editor.CanvasPadding)
	if err != nil {
		return
	}

	// The computed canvas only grows to image size plus padding; center it
	// when the widget is larger.
	if cw > v.CanvasWidth {
		v.OffsetX += (cw - v.CanvasWidth) / 2
		v.CanvasWidth = cw
	}
	if ch > v.CanvasHeight {
		v.OffsetY += (ch - v.CanvasHeight) / 2
		v.CanvasHeight = ch
	}

	ec.ctx.SetViewport(v)
}

// scaledPreview returns the preview resized to the viewport display size,
// reusing the cached copy while neither changed.
func (ec *EditorCanvas) scaledPreview(v editor.ViewportState) *image.NRGBA {
	if ec.scaled != nil && !ec.scaledStale {
		b := ec.scaled.Bounds()
		if b.Dx() == v.DisplayWidth && b.Dy() == v.DisplayHeight {
			return ec.scaled
		}
	}

	preview := ec.ctx.PreviewImage()
	if preview == nil {
		return nil
	}

	ec.scaled = imaging.Resize(preview, v.DisplayWidth, v.DisplayHeight, imaging.Lanczos)
	ec.scaledStale = false
	return ec.scaled
}

// draw is the raster drawing function.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Slate background
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i+0] = 0x34
		output.Pix[i+1] = 0x49
		output.Pix[i+2] = 0x5E
		output.Pix[i+3] = 0xFF
	}

	if !ec.ctx.HasImage() {
		return output
	}

	v := ec.ctx.Viewport()
	if v.DisplayWidth <= 0 || v.DisplayHeight <= 0 {
		return output
	}

	scaled := ec.scaledPreview(v)
	if scaled == nil {
		return output
	}

	target := image.Rect(v.OffsetX, v.OffsetY, v.OffsetX+v.DisplayWidth, v.OffsetY+v.DisplayHeight)
	draw.Draw(output, target, scaled, image.Point{}, draw.Src)

	drawImageBorder(output, v)

	if strokes := ec.ctx.OverlayStrokes(); len(strokes) > 0 {
		drawStrokes(output, strokes)
	}
	if sel, ok := ec.ctx.SelectionRect(); ok {
		drawSelection(output, sel)
	}

	return output
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &editorCanvasRenderer{canvas: ec}
}

type editorCanvasRenderer struct {
	canvas *EditorCanvas
}

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.content.Resize(size)
	if size.Width > 0 && size.Height > 0 && size != r.canvas.lastSize {
		r.canvas.lastSize = size
		r.canvas.recomputeViewport()
	}
}

func (r *editorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(editor.DefaultCanvasWidth, editor.DefaultCanvasHeight)
}

func (r *editorCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *editorCanvasRenderer) Destroy() {}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *EditorCanvas
	raster *fynecanvas.Raster

	dragging bool
	last     geometry.Point2D
}

func newDraggableContent(ec *EditorCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: ec,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

// Dragged forwards drag gestures as a Down on the first event followed by a
// Move per event. The press point is recovered from the first event's delta.
func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	pos := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))

	if !dc.dragging {
		dc.dragging = true
		start := geometry.NewPoint2D(
			float64(ev.Position.X-ev.Dragged.DX),
			float64(ev.Position.Y-ev.Dragged.DY),
		)
		dc.canvas.ctx.PointerDown(start)
	}

	dc.canvas.ctx.PointerMove(pos)
	dc.last = pos
}

func (dc *draggableContent) DragEnd() {
	if !dc.dragging {
		return
	}
	dc.dragging = false
	dc.canvas.ctx.PointerUp(dc.last)
}

// Tapped forwards a click as an immediate Down and Up at the tap point,
// which is how the text tool places its string.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	// Workaround for Fyne bug: reject clicks outside widget bounds
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	p := geometry.NewPoint2D(float64(ev.Position.X), float64(ev.Position.Y))
	dc.canvas.ctx.PointerDown(p)
	dc.canvas.ctx.PointerUp(p)
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}
