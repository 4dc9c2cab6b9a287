package code

import (
	"image/color"
	"sort"
	"strings"

	"github.com/ispapp/codebridge/pkg/highlight"

	"fyne.io/fyne/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Theme color names used by highlighted segments. A fyne theme resolves them
// through Palette.Color.
const (
	ColorNameKeyword fyne.ThemeColorName = "codeKeyword"
	ColorNameComment fyne.ThemeColorName = "codeComment"
	ColorNameString  fyne.ThemeColorName = "codeString"
)

// ColorNameFor maps a highlight category to its theme color name.
func ColorNameFor(c highlight.Category) fyne.ThemeColorName {
	switch c {
	case highlight.Keyword:
		return ColorNameKeyword
	case highlight.Comment:
		return ColorNameComment
	case highlight.String:
		return ColorNameString
	}
	return ""
}

// Palette holds one color per highlight category.
type Palette struct {
	Name    string
	Keyword color.Color
	Comment color.Color
	String  color.Color
}

// DefaultPalette is the dark editor palette.
var DefaultPalette = &Palette{
	Name:    "default",
	Keyword: color.RGBA{86, 156, 214, 255},
	Comment: color.RGBA{106, 153, 85, 255},
	String:  color.RGBA{206, 145, 120, 255},
}

// Color resolves one of the code color names.
func (p *Palette) Color(name fyne.ThemeColorName) (color.Color, bool) {
	switch name {
	case ColorNameKeyword:
		return p.Keyword, true
	case ColorNameComment:
		return p.Comment, true
	case ColorNameString:
		return p.String, true
	}
	return nil, false
}

// PaletteFromStyle builds a palette from a chroma style. Categories the style
// leaves unset keep the default colors.
func PaletteFromStyle(name string) (*Palette, bool) {
	style, ok := styles.Registry[name]
	if !ok {
		style, ok = styles.Registry[strings.ToLower(name)]
	}
	if !ok {
		return nil, false
	}

	p := &Palette{
		Name:    style.Name,
		Keyword: colourOr(style.Get(chroma.Keyword).Colour, DefaultPalette.Keyword),
		Comment: colourOr(style.Get(chroma.Comment).Colour, DefaultPalette.Comment),
		String:  colourOr(style.Get(chroma.String).Colour, DefaultPalette.String),
	}
	return p, true
}

// PaletteNames lists the chroma styles PaletteFromStyle accepts.
func PaletteNames() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

func colourOr(c chroma.Colour, fallback color.Color) color.Color {
	if !c.IsSet() {
		return fallback
	}
	return color.RGBA{c.Red(), c.Green(), c.Blue(), 255}
}
