package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// EditorTheme provides the dark slate look of the editor. The canvas and
// side panel colors assume the dark variant, so the theme pins it.
type EditorTheme struct{}

var _ fyne.Theme = (*EditorTheme)(nil)

func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x34, G: 0x98, B: 0xDB, A: 0xFF} // Accent blue
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF} // Window slate
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x34, G: 0x49, B: 0x5E, A: 0xFF} // Lighter slate
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x34, G: 0x98, B: 0xDB, A: 0x80}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x2E, G: 0xCC, B: 0x71, A: 0xFF} // Apply green
	case theme.ColorNameError:
		return color.NRGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 0xFF} // Cancel red
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *EditorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
