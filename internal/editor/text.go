package editor

import (
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"retouch/pkg/geometry"
)

// DefaultText is the string burned by the text tool when the user has not
// entered one.
const DefaultText = "Sample Text"

// textFontSize is the glyph size in image pixels. Text is rendered at image
// resolution, so its size on screen shrinks with the display scale exactly
// like the rest of the picture.
const textFontSize = 44

var (
	textFaceOnce sync.Once
	textFace     font.Face
)

// burnFace returns the shared text-tool font face, parsing the embedded font
// on first use.
func burnFace() font.Face {
	textFaceOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			// The embedded font cannot fail to parse; fall back to
			// whatever gg uses by default if it somehow does.
			return
		}
		textFace = truetype.NewFace(f, &truetype.Options{
			Size:    textFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return textFace
}

// TextSession burns a pending string into the preview at a clicked point.
// Each click restarts from a fresh copy of the committed image, so moving
// the click moves the text instead of stamping twice.
type TextSession struct {
	ctx   *Context
	text  string
	color color.NRGBA
}

// NewTextSession creates a text session bound to ctx. An empty text falls
// back to DefaultText.
func NewTextSession(ctx *Context, text string, c color.NRGBA) *TextSession {
	if text == "" {
		text = DefaultText
	}
	return &TextSession{ctx: ctx, text: text, color: c}
}

// Kind returns ToolText.
func (s *TextSession) Kind() ToolKind {
	return ToolText
}

// SetText replaces the pending string. An empty string falls back to
// DefaultText.
func (s *TextSession) SetText(text string) {
	if text == "" {
		text = DefaultText
	}
	s.text = text
}

// Text returns the pending string.
func (s *TextSession) Text() string {
	return s.text
}

// SetColor changes the text color for subsequent clicks.
func (s *TextSession) SetColor(c color.NRGBA) {
	s.color = c
}

// Color returns the current text color.
func (s *TextSession) Color() color.NRGBA {
	return s.color
}

// Down places the text: the preview is reseeded from committed, the click
// point mapped to image space, and the string drawn left-anchored on the
// baseline at that point. The glyph box is not clamped to the image, so text
// placed near the right or bottom edge clips.
func (s *TextSession) Down(p geometry.Point2D) {
	if !s.ctx.buffers.HasImage() {
		return
	}
	s.ctx.buffers.BeginPreview()
	preview := s.ctx.buffers.Preview()

	x, y := s.ctx.viewport.ToImageSpace(p.X, p.Y)

	dc := gg.NewContextForRGBA(preview)
	if face := burnFace(); face != nil {
		dc.SetFontFace(face)
	}
	dc.SetColor(s.color)
	dc.DrawString(s.text, float64(x), float64(y))

	s.ctx.pend(EventPreviewChanged)
}

// Move is a no-op; text placement is a single click.
func (s *TextSession) Move(geometry.Point2D) {}

// Up is a no-op.
func (s *TextSession) Up(geometry.Point2D) {}

// Cancel has no transient state to discard.
func (s *TextSession) Cancel() {}
