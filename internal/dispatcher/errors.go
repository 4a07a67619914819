package dispatcher

import "errors"

// Dispatcher errors. They are logged, never returned to callers: user-facing
// failures travel in action results.
var (
	// ErrNoPerformer indicates an action was registered without a performer.
	ErrNoPerformer = errors.New("dispatcher: action has no performer")

	// ErrPanic indicates a performer panicked.
	ErrPanic = errors.New("dispatcher: performer panic")

	// ErrShortcutConflict indicates more than one action matched a key event.
	ErrShortcutConflict = errors.New("dispatcher: multiple actions match shortcut")
)
