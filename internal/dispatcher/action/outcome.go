package action

import (
	"fmt"
	"runtime"
)

// Outcome is what a performer returns: either an immediate Result or a
// deferred one that resolves later.
type Outcome struct {
	result Result
	future *future
}

type future struct {
	done   chan struct{}
	result Result
	err    error
}

// Immediate wraps a result that is already known.
func Immediate(r Result) Outcome {
	return Outcome{result: r}
}

// Defer runs fn on its own goroutine and returns an outcome resolving to
// its result. A panic in fn resolves the outcome with ErrPerformerPanic.
func Defer(fn func() Result) Outcome {
	f := &future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)
				f.err = fmt.Errorf("%w: %v\n%s", ErrPerformerPanic, r, stack[:n])
			}
		}()
		f.result = fn()
	}()
	return Outcome{future: f}
}

// IsDeferred reports whether the outcome resolves asynchronously.
func (o Outcome) IsDeferred() bool {
	return o.future != nil
}

// Done returns a channel closed once the outcome has resolved.
// For immediate outcomes the channel is already closed.
func (o Outcome) Done() <-chan struct{} {
	if o.future == nil {
		return closedChan
	}
	return o.future.done
}

// Wait blocks until the outcome resolves and returns its result.
func (o Outcome) Wait() (Result, error) {
	if o.future == nil {
		return o.result, nil
	}
	<-o.future.done
	return o.future.result, o.future.err
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()
