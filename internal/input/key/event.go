package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the logical key pressed.
	Key Key

	// Rune is the character for KeyRune events, as produced by the layout
	// (so Shift+x yields 'X').
	Rune rune

	// Code identifies the physical key.
	Code Code

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// NewRuneEvent creates a key event for a character, deriving its code.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Code:      CodeFromRune(r),
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Code:      Code(key.String()),
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// CtrlOrCmd reports whether the platform command modifier is held.
func (e Event) CtrlOrCmd() bool {
	return e.Modifiers.Has(CtrlOrCmd())
}

// Alt reports whether Alt is held.
func (e Event) Alt() bool {
	return e.Modifiers.HasAlt()
}

// Shift reports whether Shift is held.
func (e Event) Shift() bool {
	return e.Modifiers.HasShift()
}

// PreventDefault marks the event as consumed; the host must not apply its
// default behavior.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation stops the event from reaching further handlers.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether StopPropagation was called.
func (e Event) PropagationStopped() bool {
	return e.propagationStopped
}

// String returns a canonical string representation like "Ctrl+Alt+x".
func (e Event) String() string {
	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Code: %s, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Code, strings.ReplaceAll(e.Modifiers.String(), "+", "|"))
}
