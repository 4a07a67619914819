package plugin

import "errors"

// Plugin system errors.
var (
	// ErrInvalidAction is returned when a script declares a malformed action.
	ErrInvalidAction = errors.New("invalid scripted action")
)
