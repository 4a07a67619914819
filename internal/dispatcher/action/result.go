package action

import (
	"fmt"

	"github.com/dshills/drawstorm/internal/scene"
)

// Result describes the mutation an action wants applied.
// It is consumed exactly once by the updater and never retained.
type Result struct {
	// AppState replaces the application state when non-nil.
	AppState *scene.AppState

	// Elements replaces the element list when non-nil.
	Elements []*scene.Element

	// CommitToHistory requests an undo checkpoint for this change.
	CommitToHistory bool
}

// NoHistory returns a result that changes nothing and records no
// undo checkpoint.
func NoHistory() Result {
	return Result{}
}

// WithState returns a copy of the result carrying the given state.
func (r Result) WithState(state scene.AppState) Result {
	r.AppState = &state
	return r
}

// WithElements returns a copy of the result carrying the given elements.
func (r Result) WithElements(elements []*scene.Element) Result {
	r.Elements = elements
	return r
}

// WithHistory returns a copy of the result with CommitToHistory set.
func (r Result) WithHistory(commit bool) Result {
	r.CommitToHistory = commit
	return r
}

// Failed returns a result surfacing err as the state's error message.
// It never records an undo checkpoint.
func Failed(state scene.AppState, err error) Result {
	next := state.Clone()
	next.ErrorMessage = err.Error()
	return Result{AppState: &next}
}

// IsEmpty reports whether the result carries no state or element change.
func (r Result) IsEmpty() bool {
	return r.AppState == nil && r.Elements == nil
}

// String returns a short description for logs.
func (r Result) String() string {
	return fmt.Sprintf("Result{state: %t, elements: %d, commit: %t}", r.AppState != nil, len(r.Elements), r.CommitToHistory)
}
