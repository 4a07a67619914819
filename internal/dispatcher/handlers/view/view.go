// Package view provides the canvas display toggles: grid, view mode and
// zen mode.
package view

import (
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

// GridSize is the grid spacing applied when the grid is turned on.
const GridSize = 20

// Action names for view toggles.
const (
	ActionGridMode action.Name = "gridMode" // CtrlOrCmd+'
	ActionViewMode action.Name = "viewMode" // Alt+R
	ActionZenMode  action.Name = "zenMode"  // Alt+Z
)

// toggle describes one boolean canvas setting.
type toggle struct {
	name    action.Name
	label   string
	checked action.CheckedFunc
	set     func(state *scene.AppState, on bool)
	pinned  func(props action.Props) bool
	keyTest action.KeyTestFunc
}

func (t toggle) action() action.Action {
	return action.Action{
		Name:     t.name,
		ViewMode: true,
		// Only turning a mode on is reported.
		TrackEvent: action.Track("canvas").When(func(state scene.AppState, _ []*scene.Element, _ any) bool {
			return !t.checked(state)
		}),
		Perform: func(_ []*scene.Element, _ []*scene.Layer, state scene.AppState, _ any, _ action.App) action.Outcome {
			next := state.Clone()
			t.set(&next, !t.checked(state))
			return action.Immediate(action.NoHistory().WithState(next))
		},
		Checked: t.checked,
		Predicate: func(_ []*scene.Element, _ []*scene.Layer, _ scene.AppState, props action.Props, _ action.App) bool {
			return !t.pinned(props)
		},
		ContextItemLabel: t.label,
		KeyTest:          t.keyTest,
		PanelComponent:   action.Checkbox(t.label, t.checked),
	}
}

// GridMode toggles the snapping grid between off and GridSize.
func GridMode() action.Action {
	return toggle{
		name:    ActionGridMode,
		label:   "labels.showGrid",
		checked: func(s scene.AppState) bool { return s.GridSize != 0 },
		set: func(s *scene.AppState, on bool) {
			s.GridSize = 0
			if on {
				s.GridSize = GridSize
			}
		},
		pinned: func(p action.Props) bool { return p.GridModeEnabled != nil },
		keyTest: func(e key.Event, _ scene.AppState, _ []*scene.Element) bool {
			return e.CtrlOrCmd() && e.Code == key.CodeQuote
		},
	}.action()
}

// ViewMode toggles the read-only view mode.
func ViewMode() action.Action {
	return toggle{
		name:    ActionViewMode,
		label:   "labels.viewMode",
		checked: func(s scene.AppState) bool { return s.ViewModeEnabled },
		set:     func(s *scene.AppState, on bool) { s.ViewModeEnabled = on },
		pinned:  func(p action.Props) bool { return p.ViewModeEnabled != nil },
		keyTest: func(e key.Event, _ scene.AppState, _ []*scene.Element) bool {
			return !e.CtrlOrCmd() && e.Alt() && e.Code == key.CodeR
		},
	}.action()
}

// ZenMode toggles zen mode, which hides most of the UI.
func ZenMode() action.Action {
	return toggle{
		name:    ActionZenMode,
		label:   "buttons.zenMode",
		checked: func(s scene.AppState) bool { return s.ZenModeEnabled },
		set:     func(s *scene.AppState, on bool) { s.ZenModeEnabled = on },
		pinned:  func(p action.Props) bool { return p.ZenModeEnabled != nil },
		keyTest: func(e key.Event, _ scene.AppState, _ []*scene.Element) bool {
			return !e.CtrlOrCmd() && e.Alt() && e.Code == key.CodeZ
		},
	}.action()
}

// Actions returns the view toggles.
func Actions() []action.Action {
	return []action.Action{GridMode(), ViewMode(), ZenMode()}
}
