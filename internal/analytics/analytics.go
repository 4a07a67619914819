// Package analytics delivers action tracking events to reporting sinks.
package analytics

import (
	"errors"
	"fmt"
)

// Event is one tracked action invocation.
type Event struct {
	Category string
	Action   string
	Label    string
}

// String returns a short description for logs.
func (e Event) String() string {
	return fmt.Sprintf("%s/%s (%s)", e.Category, e.Action, e.Label)
}

// Sink receives tracking events.
type Sink interface {
	Track(event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(event Event) error

// Track implements Sink.
func (f SinkFunc) Track(event Event) error {
	return f(event)
}

// Nop discards every event.
type Nop struct{}

// Track implements Sink.
func (Nop) Track(Event) error { return nil }

// Multi fans an event out to every sink. All sinks are called even if one
// fails; the failures are joined.
type Multi []Sink

// Track implements Sink.
func (m Multi) Track(event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Track(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
