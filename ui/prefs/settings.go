package prefs

import (
	"image/color"

	"retouch/internal/editor"
	"retouch/internal/imageio"
	"retouch/pkg/colorutil"
)

// Setting keys used by the editor UI.
const (
	KeyDrawColor       = "draw_color"
	KeyTextColor       = "text_color"
	KeyDefaultText     = "default_text"
	KeyStrokeWidth     = "stroke_width"
	KeyJPEGQuality     = "jpeg_quality"
	KeyHistoryCapacity = "history_capacity"
)

// DefaultToolColor is the hex form of the draw and text tool default.
const DefaultToolColor = "#ff0000"

// DrawColor returns the stored draw tool color, falling back to red when
// the setting is missing or unparseable.
func (p *Prefs) DrawColor() color.NRGBA {
	return p.colorWithFallback(KeyDrawColor, colorutil.Red)
}

// SetDrawColor stores the draw tool color as a hex string.
func (p *Prefs) SetDrawColor(c color.Color) {
	p.SetString(KeyDrawColor, colorutil.FormatHex(c))
}

// TextColor returns the stored text tool color, falling back to red.
func (p *Prefs) TextColor() color.NRGBA {
	return p.colorWithFallback(KeyTextColor, colorutil.Red)
}

// SetTextColor stores the text tool color as a hex string.
func (p *Prefs) SetTextColor(c color.Color) {
	p.SetString(KeyTextColor, colorutil.FormatHex(c))
}

// DefaultText returns the string stamped by the text tool when the user
// has not typed one.
func (p *Prefs) DefaultText() string {
	if s := p.String(KeyDefaultText); s != "" {
		return s
	}
	return editor.DefaultText
}

// SetDefaultText stores the text tool default string.
func (p *Prefs) SetDefaultText(s string) {
	p.SetString(KeyDefaultText, s)
}

// StrokeWidth returns the base draw stroke width in image pixels.
func (p *Prefs) StrokeWidth() int {
	w := p.Int(KeyStrokeWidth, editor.BaseStrokeWidth)
	if w < 1 {
		return editor.BaseStrokeWidth
	}
	return w
}

// SetStrokeWidth stores the base draw stroke width.
func (p *Prefs) SetStrokeWidth(w int) {
	p.SetInt(KeyStrokeWidth, w)
}

// JPEGQuality returns the stored JPEG encode quality (1-100).
func (p *Prefs) JPEGQuality() int {
	q := p.Int(KeyJPEGQuality, imageio.DefaultJPEGQuality)
	if q < 1 || q > 100 {
		return imageio.DefaultJPEGQuality
	}
	return q
}

// SetJPEGQuality stores the JPEG encode quality.
func (p *Prefs) SetJPEGQuality(q int) {
	p.SetInt(KeyJPEGQuality, q)
}

// HistoryCapacity returns the number of committed states the undo stack
// retains.
func (p *Prefs) HistoryCapacity() int {
	n := p.Int(KeyHistoryCapacity, editor.DefaultHistoryCapacity)
	if n < 1 {
		return editor.DefaultHistoryCapacity
	}
	return n
}

// SetHistoryCapacity stores the undo stack depth. Takes effect on the next
// start, since the history stack is sized once per context.
func (p *Prefs) SetHistoryCapacity(n int) {
	p.SetInt(KeyHistoryCapacity, n)
}

func (p *Prefs) colorWithFallback(key string, fallback color.NRGBA) color.NRGBA {
	s := p.String(key)
	if s == "" {
		return fallback
	}
	c, err := colorutil.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}
