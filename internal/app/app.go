// Package app is the drawstorm application shell. It owns the scene,
// implements the handle actions use to reach the app, applies every
// action result, and wires configuration, plugins and the terminal
// front end around the dispatcher.
package app

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/dispatcher"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/plugin"
	"github.com/dshills/drawstorm/internal/scene"
)

// DefaultToastDuration is how long a toast without its own duration shows.
const DefaultToastDuration = 5 * time.Second

// Checkpoint is one undo history entry.
type Checkpoint struct {
	State    scene.AppState
	Elements []*scene.Element
}

// Application holds the live scene and routes input to the dispatcher.
type Application struct {
	mu       sync.RWMutex
	state    scene.AppState
	elements []*scene.Element
	layers   []*scene.Layer
	files    scene.Files
	history  []Checkpoint

	device action.Device
	props  action.Props
	canvas action.Canvas

	clipboard sysclip.Bridge
	manager   *dispatcher.Manager
	plugins   *plugin.Host
	logger    *log.Logger

	toastTimer *time.Timer
	onChange   func()
	closers    []io.Closer
}

// Device implements action.App.
func (a *Application) Device() action.Device {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.device
}

// Files implements action.App.
func (a *Application) Files() scene.Files {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.files
}

// Canvas implements action.App.
func (a *Application) Canvas() action.Canvas {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.canvas
}

// Props implements action.App.
func (a *Application) Props() action.Props {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.props
}

// State returns a copy of the current app state.
func (a *Application) State() scene.AppState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Clone()
}

// Elements returns the current element list. Elements are never mutated
// in place, so the slice may be read freely.
func (a *Application) Elements() []*scene.Element {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.elements)
}

// Layers returns the current layers.
func (a *Application) Layers() []*scene.Layer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.layers)
}

// History returns the undo checkpoints recorded so far.
func (a *Application) History() []Checkpoint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.history)
}

// Document snapshots the scene as a saveable document.
func (a *Application) Document() *scene.Document {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return &scene.Document{
		Type:     scene.DocumentType,
		Version:  scene.DocumentVersion,
		Source:   "drawstorm",
		Elements: slices.Clone(a.elements),
		Layers:   slices.Clone(a.layers),
		AppState: a.state.Clone(),
		Files:    a.files,
	}
}

// Manager returns the action manager.
func (a *Application) Manager() *dispatcher.Manager {
	return a.manager
}

// Logger returns the application logger.
func (a *Application) Logger() *log.Logger {
	return a.logger
}

// SetCanvas attaches or detaches the render surface.
func (a *Application) SetCanvas(c action.Canvas) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.canvas = c
}

// OnChange registers fn to run after every applied result.
func (a *Application) OnChange(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onChange = fn
}

// HandleKey routes a key press to the dispatcher.
func (a *Application) HandleKey(e *key.Event) bool {
	return a.manager.HandleKeyDown(e)
}

// Execute runs the named action as the api source. Like any programmatic
// invocation it bypasses the predicate and view mode.
func (a *Application) Execute(name action.Name) error {
	act, ok := a.manager.Action(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	a.manager.ExecuteAction(act, action.SourceAPI)
	return nil
}

// Wait blocks until deferred results have been applied.
func (a *Application) Wait() {
	a.manager.Wait()
}

// apply is the dispatcher's updater. Each result is merged exactly once.
func (a *Application) apply(r action.Result) {
	a.mu.Lock()
	onChange := a.applyLocked(r)
	a.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (a *Application) applyLocked(r action.Result) func() {
	if r.Elements != nil {
		a.elements = r.Elements
	}
	if r.AppState != nil {
		prev := a.state.Toast
		// Host pins win over whatever the action computed.
		a.state = pinModes(*r.AppState, a.props)
		if a.state.Toast != nil && (prev == nil || *prev != *a.state.Toast) {
			a.scheduleToastLocked()
		}
	}
	if r.CommitToHistory {
		a.history = append(a.history, Checkpoint{
			State:    a.state.Clone(),
			Elements: slices.Clone(a.elements),
		})
	}
	return a.onChange
}

func (a *Application) scheduleToastLocked() {
	if a.toastTimer != nil {
		a.toastTimer.Stop()
	}
	toast := *a.state.Toast
	d := toast.Duration
	if d <= 0 {
		if toast.Closable {
			return
		}
		d = DefaultToastDuration
	}
	a.toastTimer = time.AfterFunc(d, func() { a.expireToast(toast) })
}

func (a *Application) expireToast(toast scene.Toast) {
	a.mu.Lock()
	if a.state.Toast == nil || *a.state.Toast != toast {
		a.mu.Unlock()
		return
	}
	a.state.Toast = nil
	onChange := a.onChange
	a.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// DismissMessages clears the toast and error message.
func (a *Application) DismissMessages() {
	state := a.State()
	if state.Toast == nil && state.ErrorMessage == "" {
		return
	}
	state.Toast = nil
	state.ErrorMessage = ""
	a.apply(action.NoHistory().WithState(state))
}

// Close waits for pending actions and releases plugins and log files.
func (a *Application) Close() error {
	a.manager.Wait()

	a.mu.Lock()
	if a.toastTimer != nil {
		a.toastTimer.Stop()
	}
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var first error
	if a.plugins != nil {
		first = a.plugins.Close()
	}
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
