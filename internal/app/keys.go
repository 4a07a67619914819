package app

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/drawstorm/internal/input/key"
)

// KeyEvent converts a terminal key press to a key event. Terminals report
// characters rather than physical keys, so codes are derived from a US
// layout and an upper-case letter implies Shift.
func KeyEvent(ev *tcell.EventKey) key.Event {
	mods := convertMod(ev.Modifiers())

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		e := key.NewRuneEvent(r, mods)
		e.Timestamp = ev.When()
		return e
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return special(ev, key.KeyBackspace, mods)
	case tcell.KeyTab:
		return special(ev, key.KeyTab, mods)
	case tcell.KeyEnter:
		return special(ev, key.KeyEnter, mods)
	case tcell.KeyEscape:
		return special(ev, key.KeyEscape, mods)
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			e := key.NewRuneEvent(rune('a'+int(k-tcell.KeyCtrlA)), mods.With(key.ModCtrl))
			e.Timestamp = ev.When()
			return e
		}
		return special(ev, convertKey(k), mods)
	}
}

func special(ev *tcell.EventKey, k key.Key, mods key.Modifier) key.Event {
	e := key.NewSpecialEvent(k, mods)
	e.Timestamp = ev.When()
	return e
}

func convertKey(k tcell.Key) key.Key {
	switch k {
	case tcell.KeyDelete:
		return key.KeyDelete
	case tcell.KeyInsert:
		return key.KeyInsert
	case tcell.KeyHome:
		return key.KeyHome
	case tcell.KeyEnd:
		return key.KeyEnd
	case tcell.KeyPgUp:
		return key.KeyPageUp
	case tcell.KeyPgDn:
		return key.KeyPageDown
	case tcell.KeyUp:
		return key.KeyUp
	case tcell.KeyDown:
		return key.KeyDown
	case tcell.KeyLeft:
		return key.KeyLeft
	case tcell.KeyRight:
		return key.KeyRight
	case tcell.KeyF1:
		return key.KeyF1
	case tcell.KeyF2:
		return key.KeyF2
	case tcell.KeyF3:
		return key.KeyF3
	case tcell.KeyF4:
		return key.KeyF4
	case tcell.KeyF5:
		return key.KeyF5
	case tcell.KeyF6:
		return key.KeyF6
	case tcell.KeyF7:
		return key.KeyF7
	case tcell.KeyF8:
		return key.KeyF8
	case tcell.KeyF9:
		return key.KeyF9
	case tcell.KeyF10:
		return key.KeyF10
	case tcell.KeyF11:
		return key.KeyF11
	case tcell.KeyF12:
		return key.KeyF12
	default:
		return key.KeyNone
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}
