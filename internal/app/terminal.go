package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/input/palette"
	"github.com/dshills/drawstorm/internal/scene"
)

var (
	styleHeader = tcell.StyleDefault.Reverse(true)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleToast  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSel    = tcell.StyleDefault.Bold(true)
	styleHelp   = tcell.StyleDefault.Dim(true)
)

type quitSignal struct{}

// Terminal is the tcell front end. It draws a summary of the scene and
// feeds key presses to the application.
type Terminal struct {
	app    *Application
	screen tcell.Screen

	mu            sync.Mutex
	width, height int
	pasting       bool
	paste         strings.Builder
	palette       paletteView
	quit          key.Chord
	openPalette   key.Chord
}

// NewTerminal creates a front end on screen. A nil screen opens the
// controlling terminal.
func NewTerminal(app *Application, screen tcell.Screen) (*Terminal, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}
	return &Terminal{
		app:         app,
		screen:      screen,
		palette:     paletteView{palette: palette.New(app.Manager().Actions())},
		quit:        key.MustParseChord("Ctrl+Q"),
		openPalette: key.MustParseChord("Ctrl+P"),
	}, nil
}

// Size implements action.Canvas.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Run drives the event loop until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer t.screen.Fini()
	t.screen.EnablePaste()

	t.app.SetCanvas(t)
	defer t.app.SetCanvas(nil)
	t.resize()
	t.app.OnChange(func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer t.app.OnChange(nil)

	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
	})
	defer stop()

	t.draw()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			t.resize()
			t.screen.Sync()
		case *tcell.EventInterrupt:
			if _, ok := e.Data().(quitSignal); ok {
				return ctx.Err()
			}
		case *tcell.EventPaste:
			t.handlePaste(e)
		case *tcell.EventKey:
			if err := t.handleKey(e); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
		t.draw()
	}
}

func (t *Terminal) resize() {
	w, h := t.screen.Size()
	t.mu.Lock()
	t.width, t.height = w, h
	t.mu.Unlock()
}

func (t *Terminal) handlePaste(e *tcell.EventPaste) {
	if e.Start() {
		t.pasting = true
		t.paste.Reset()
		return
	}
	t.pasting = false
	t.app.PasteFromClipboard(&action.ClipboardEvent{Text: t.paste.String()})
}

func (t *Terminal) handleKey(e *tcell.EventKey) error {
	if t.pasting {
		switch e.Key() {
		case tcell.KeyRune:
			t.paste.WriteRune(e.Rune())
		case tcell.KeyEnter:
			t.paste.WriteByte('\n')
		case tcell.KeyTab:
			t.paste.WriteByte('\t')
		}
		return nil
	}

	ev := KeyEvent(e)
	if t.quit.Matches(ev) {
		return ErrQuit
	}
	if t.palette.open {
		t.palette.handle(t.app, ev)
		return nil
	}
	if t.openPalette.Matches(ev) {
		t.palette.show(t.app)
		return nil
	}
	if ev.Key == key.KeyEscape {
		t.app.DismissMessages()
		return nil
	}
	t.app.HandleKey(&ev)
	return nil
}

func (t *Terminal) draw() {
	state := t.app.State()
	elements := scene.NonDeleted(t.app.Elements())
	w, h := t.screen.Size()

	t.screen.Clear()

	header := fmt.Sprintf(" drawstorm  grid:%s  view:%s  zen:%s  elements:%d  selected:%d ",
		onOff(state.GridSize != 0), onOff(state.ViewModeEnabled), onOff(state.ZenModeEnabled),
		len(elements), len(scene.SelectedElements(elements, state, false)))
	t.fill(0, w, styleHeader)
	putString(t.screen, 0, 0, w, header, styleHeader)

	row := 1
	if state.ErrorMessage != "" {
		putString(t.screen, 1, row, w, state.ErrorMessage, styleError)
		row++
	}
	if state.Toast != nil {
		for _, line := range strings.Split(state.Toast.Message, "\n") {
			putString(t.screen, 1, row, w, line, styleToast)
			row++
		}
	}
	row++

	for _, e := range elements {
		if row >= h-1 {
			break
		}
		style, mark := tcell.StyleDefault, " "
		if state.IsSelected(e.ID) {
			style, mark = styleSel, "*"
		}
		putString(t.screen, 1, row, w, mark+" "+describe(e), style)
		row++
	}

	if !state.ZenModeEnabled {
		putString(t.screen, 0, h-1, w, " Ctrl+Q quit  Ctrl+P actions  Esc dismiss", styleHelp)
	}
	t.palette.draw(t.screen, w)
	t.screen.Show()
}

func (t *Terminal) fill(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}

// putString draws s from column x, clipped at width, advancing by the
// display width of each grapheme cluster.
func putString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	g := uniseg.NewGraphemes(s)
	for g.Next() && x < width {
		runes := g.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		w := g.Width()
		if w < 1 {
			w = 1
		}
		x += w
	}
}

func describe(e *scene.Element) string {
	s := fmt.Sprintf("%-9s %4.0f,%-4.0f %4.0fx%-4.0f", e.Type, e.X, e.Y, e.Width, e.Height)
	if e.Text != "" {
		s += fmt.Sprintf(" %q", e.Text)
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
