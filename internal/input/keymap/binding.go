package keymap

import (
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
)

// Binding maps a shortcut to an action.
type Binding struct {
	// Keys is the shortcut, e.g. "CtrlOrCmd+Quote" or "Alt+Shift+C".
	// An empty value removes the action's shortcut.
	Keys string

	// Action is the name of the bound action.
	Action action.Name

	// Priority, when non-zero, replaces the action's key priority.
	Priority int

	// Description documents the binding.
	Description string
}

// NewBinding creates a binding of keys to the named action.
func NewBinding(keys string, name action.Name) Binding {
	return Binding{
		Keys:   keys,
		Action: name,
	}
}

// WithPriority sets the priority for this binding.
func (b Binding) WithPriority(priority int) Binding {
	b.Priority = priority
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Unbinds reports whether the binding removes a shortcut.
func (b Binding) Unbinds() bool {
	return b.Keys == ""
}

// Chord parses the binding's keys. Unbinding entries return a zero chord.
func (b Binding) Chord() (key.Chord, error) {
	if b.Unbinds() {
		return key.Chord{}, nil
	}
	return key.ParseChord(b.Keys)
}
