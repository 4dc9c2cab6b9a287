package theme

import (
	"image/color"

	"github.com/ispapp/codebridge/pkg/code"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Editor surface colors.
var (
	BackgroundColor = color.RGBA{30, 30, 30, 255}
	ForegroundColor = color.RGBA{255, 255, 255, 255}
)

// AppTheme is a dark theme that also resolves the highlight color names.
type AppTheme struct {
	Palette *code.Palette
}

// NewAppTheme creates the theme with the named chroma palette, falling back
// to the default palette when the name is empty or unknown.
func NewAppTheme(palette string) *AppTheme {
	if p, ok := code.PaletteFromStyle(palette); ok && palette != "" {
		return &AppTheme{Palette: p}
	}
	return &AppTheme{Palette: code.DefaultPalette}
}

func (m *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	palette := m.Palette
	if palette == nil {
		palette = code.DefaultPalette
	}
	if c, ok := palette.Color(name); ok {
		return c
	}

	switch name {
	case theme.ColorNameBackground, theme.ColorNameInputBackground:
		return BackgroundColor
	case theme.ColorNameForeground:
		return ForegroundColor
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (m *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

func (m *AppTheme) ApplyTheme(a fyne.App) {
	a.Settings().SetTheme(m)
}
