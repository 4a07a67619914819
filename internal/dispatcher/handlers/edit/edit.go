// Package edit provides element editing actions.
package edit

import (
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

// Action names for edit operations.
const (
	ActionDeleteSelected action.Name = "deleteSelectedElements" // Delete, Backspace
)

// DeleteSelected soft-deletes the selected elements together with the
// text bound to them and clears the selection.
func DeleteSelected() action.Action {
	return action.Action{
		Name:             ActionDeleteSelected,
		TrackEvent:       action.Track("element"),
		ContextItemLabel: "labels.delete",
		Perform:          performDelete,
		Predicate: func(elements []*scene.Element, _ []*scene.Layer, state scene.AppState, _ action.Props, _ action.App) bool {
			return len(scene.SelectedElements(scene.NonDeleted(elements), state, false)) > 0
		},
		KeyTest: func(e key.Event, _ scene.AppState, _ []*scene.Element) bool {
			return e.Modifiers.IsEmpty() && (e.Key == key.KeyDelete || e.Key == key.KeyBackspace)
		},
	}
}

func performDelete(elements []*scene.Element, _ []*scene.Layer, state scene.AppState, _ any, _ action.App) action.Outcome {
	return action.Immediate(deleteSelected(elements, state))
}

func deleteSelected(elements []*scene.Element, state scene.AppState) action.Result {
	doomed := make(map[string]bool)
	for _, e := range scene.SelectedElements(elements, state, true) {
		if !e.IsDeleted {
			doomed[e.ID] = true
		}
	}
	if len(doomed) == 0 {
		return action.NoHistory()
	}

	next := make([]*scene.Element, len(elements))
	for i, e := range elements {
		if e != nil && doomed[e.ID] {
			e = e.Bump()
			e.IsDeleted = true
		}
		next[i] = e
	}

	nextState := state.WithSelection()
	return action.NoHistory().
		WithElements(next).
		WithState(nextState).
		WithHistory(true)
}
