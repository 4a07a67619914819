// Package action defines the contract shared by every user-invocable
// operation: the Action descriptor, its performer / predicate / shortcut
// function types, the Result a performer returns, and the App handle
// actions see.
//
// Actions never mutate application state. A performer reads the snapshot
// it is given and returns a Result describing the mutation; the owning
// shell applies it. Performers that must wait on a collaborator return a
// deferred Outcome instead of blocking the caller.
//
// # Composition
//
// Actions are plain values with a uniform call signature, so one action
// may build on another by calling its Perform directly:
//
//	cut.Perform = func(elements []*scene.Element, layers []*scene.Layer, state scene.AppState, value any, app action.App) action.Outcome {
//	    copy.Perform(elements, layers, state, value, app)
//	    return deleteSelected.Perform(elements, layers, state, nil, app)
//	}
package action
