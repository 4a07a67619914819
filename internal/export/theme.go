package export

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/drawstorm/internal/scene"
)

const (
	defaultStroke     = "#1e1e1e"
	defaultBackground = "#ffffff"
	darkBackground    = "#121212"
)

// theme resolves element colors for one export.
type theme struct {
	dark       bool
	background colorful.Color
}

func newTheme(state scene.AppState) theme {
	t := theme{dark: state.ExportWithDarkMode}
	bg := parseColor(state.ViewBackgroundColor, defaultBackground)
	if t.dark {
		bg = parseColor(darkBackground, darkBackground)
	}
	t.background = bg
	return t
}

// resolve parses hex and, in dark mode, inverts its lightness so dark
// strokes stay readable on the dark background.
func (t theme) resolve(hex, fallback string) colorful.Color {
	c := parseColor(hex, fallback)
	if !t.dark {
		return c
	}
	h, cr, l := c.Hcl()
	return colorful.Hcl(h, cr, 1-l).Clamped()
}

func (t theme) stroke(e *scene.Element) colorful.Color {
	return t.resolve(e.StrokeColor, defaultStroke)
}

// fill returns the element background and whether it should be painted.
func (t theme) fill(e *scene.Element) (colorful.Color, bool) {
	if e.BackgroundColor == "" || e.BackgroundColor == "transparent" {
		return colorful.Color{}, false
	}
	return t.resolve(e.BackgroundColor, defaultBackground), true
}

func parseColor(hex, fallback string) colorful.Color {
	if c, err := colorful.Hex(hex); err == nil {
		return c
	}
	c, _ := colorful.Hex(fallback)
	return c
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
