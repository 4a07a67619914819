package action

import "errors"

// Action errors.
var (
	// ErrPerformerPanic indicates a deferred performer panicked.
	ErrPerformerPanic = errors.New("action: performer panic")
)
