// Package colorutil provides shared color utilities for the retouch application.
package colorutil

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Common tool colors. Red is the default for the draw and text tools.
var (
	Black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	Green = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
	Blue  = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
)

// ParseHex parses a "#rrggbb" string into an opaque NRGBA color.
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatHex formats a color as a "#rrggbb" string, discarding alpha.
func FormatHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	cf := colorful.Color{
		R: float64(r) / 65535.0,
		G: float64(g) / 65535.0,
		B: float64(b) / 65535.0,
	}
	return cf.Hex()
}

// Luminance returns the Rec. 601 luma of a color in the 0-255 range.
func Luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
}
