package action

import (
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

// Name uniquely identifies an action in a registry.
type Name string

// Source identifies what triggered an action invocation.
type Source string

// Action sources.
const (
	SourceUI          Source = "ui"
	SourceKeyboard    Source = "keyboard"
	SourceContextMenu Source = "contextMenu"
	SourceAPI         Source = "api"
)

// PerformFunc computes the outcome of an action from a state snapshot.
// value carries auxiliary input such as panel form state; it is nil for
// keyboard and programmatic invocations.
type PerformFunc func(elements []*scene.Element, layers []*scene.Layer, state scene.AppState, value any, app App) Outcome

// PredicateFunc reports whether an action is currently enabled.
type PredicateFunc func(elements []*scene.Element, layers []*scene.Layer, state scene.AppState, props Props, app App) bool

// KeyTestFunc reports whether a key event triggers an action.
type KeyTestFunc func(event key.Event, state scene.AppState, elements []*scene.Element) bool

// CheckedFunc derives the on/off state of a toggle action.
type CheckedFunc func(state scene.AppState) bool

// Action is an immutable descriptor for one user-invocable operation.
type Action struct {
	// Name is the registry key. Registering a second action with the
	// same name replaces the first.
	Name Name

	// Perform computes the result. Required.
	Perform PerformFunc

	// Predicate gates enablement. Nil means always enabled.
	Predicate PredicateFunc

	// KeyTest matches keyboard shortcuts. Nil means no shortcut.
	KeyTest KeyTestFunc

	// TrackEvent describes analytics reporting for the action.
	TrackEvent TrackEvent

	// ViewMode allows the shortcut to run while the app is in view mode.
	ViewMode bool

	// Checked reports the toggle state for toggle-style actions.
	Checked CheckedFunc

	// ContextItemLabel is the translation key for menus.
	ContextItemLabel string

	// KeyPriority orders overlapping shortcuts (higher first).
	KeyPriority int

	// PanelComponent renders inline UI bound to the action.
	PanelComponent PanelComponent
}

// Enabled evaluates the predicate against the given snapshot.
func (a Action) Enabled(elements []*scene.Element, layers []*scene.Layer, state scene.AppState, props Props, app App) bool {
	return a.Predicate == nil || a.Predicate(elements, layers, state, props, app)
}

// HasShortcut reports whether the action declares a key test.
func (a Action) HasShortcut() bool {
	return a.KeyTest != nil
}

// ChordTest returns a key test matching exactly the given chord.
func ChordTest(chord key.Chord) KeyTestFunc {
	return func(event key.Event, _ scene.AppState, _ []*scene.Element) bool {
		return chord.Matches(event)
	}
}
