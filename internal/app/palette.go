package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/input/palette"
)

const paletteRows = 8

var (
	stylePalette       = tcell.StyleDefault.Reverse(true)
	stylePaletteCursor = tcell.StyleDefault.Bold(true).Underline(true)
)

// paletteView is the action search overlay opened with Ctrl+P.
type paletteView struct {
	palette *palette.Palette
	open    bool
	query   []rune
	cursor  int
	results []palette.Result
}

func (v *paletteView) show(a *Application) {
	v.palette.Reset(a.Manager().Actions())
	v.open = true
	v.query = v.query[:0]
	v.cursor = 0
	v.refresh()
}

func (v *paletteView) hide() {
	v.open = false
	v.results = nil
}

func (v *paletteView) refresh() {
	v.results = v.palette.Search(string(v.query), paletteRows)
	v.cursor = min(v.cursor, max(len(v.results)-1, 0))
}

// handle consumes a key while the overlay is open.
func (v *paletteView) handle(a *Application, ev key.Event) {
	switch ev.Key {
	case key.KeyEscape:
		v.hide()
	case key.KeyUp:
		v.cursor = max(v.cursor-1, 0)
	case key.KeyDown:
		v.cursor = min(v.cursor+1, max(len(v.results)-1, 0))
	case key.KeyBackspace:
		if n := len(v.query); n > 0 {
			v.query = v.query[:n-1]
			v.refresh()
		}
	case key.KeyEnter:
		if len(v.results) == 0 {
			return
		}
		name := v.results[v.cursor].Entry.Name
		v.hide()
		if err := a.Execute(name); err != nil {
			a.Logger().Warn("palette action failed", "action", name, "err", err)
			return
		}
		v.palette.Record(name)
	case key.KeyRune:
		if ev.IsChar() && !ev.Modifiers.HasCtrl() && !ev.Modifiers.HasAlt() {
			v.query = append(v.query, ev.Rune)
			v.cursor = 0
			v.refresh()
		}
	}
}

func (v *paletteView) draw(screen tcell.Screen, w int) {
	if !v.open {
		return
	}
	width := min(w-2, 60)
	for y := 1; y <= paletteRows+1; y++ {
		for x := 1; x <= width; x++ {
			screen.SetContent(x, y, ' ', nil, stylePalette)
		}
	}
	putString(screen, 1, 1, width+1, "> "+string(v.query), stylePalette.Bold(true))
	for i, r := range v.results {
		style := stylePalette
		if i == v.cursor {
			style = stylePaletteCursor
		}
		line := fmt.Sprintf(" %-32s %s", r.Entry.Title, r.Entry.Name)
		putString(screen, 1, 2+i, width+1, line, style)
	}
}
