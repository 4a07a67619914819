package dispatcher

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/drawstorm/internal/analytics"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

// Updater merges an action result into application state.
// The manager calls it exactly once per performed action.
type Updater func(result action.Result)

// StateFunc returns the current application state snapshot.
type StateFunc func() scene.AppState

// ElementsFunc returns every element, soft-deleted ones included.
type ElementsFunc func() []*scene.Element

// LayersFunc returns the current layers.
type LayersFunc func() []*scene.Layer

// Scheduler runs fn on the host's event loop.
type Scheduler func(fn func())

// Option configures a Manager.
type Option func(*Manager)

// WithConfig sets the manager configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) { m.config = config }
}

// WithLogger sets the logger for conflicts, panics and tracking failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithSink reports tracked actions to sink.
func WithSink(sink analytics.Sink) Option {
	return func(m *Manager) { m.sink = sink }
}

// WithScheduler delivers deferred results through s instead of the
// goroutine that awaited them.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) { m.schedule = s }
}

// Manager resolves key events, panel interactions and programmatic calls
// to actions, runs their performers against fresh snapshots and forwards
// each result to the updater.
type Manager struct {
	registry *Registry
	tracker  *Tracker
	metrics  *Metrics
	config   Config
	logger   *log.Logger
	sink     analytics.Sink
	schedule Scheduler

	updater     Updater
	getState    StateFunc
	getElements ElementsFunc
	getLayers   LayersFunc
	app         action.App

	// updateMu keeps results reaching the updater one at a time.
	updateMu sync.Mutex
	pending  sync.WaitGroup
}

// New creates a manager reading state through the accessor functions and
// writing it through updater.
func New(updater Updater, getState StateFunc, getElements ElementsFunc, getLayers LayersFunc, app action.App, opts ...Option) *Manager {
	m := &Manager{
		registry:    NewRegistry(),
		config:      DefaultConfig(),
		updater:     updater,
		getState:    getState,
		getElements: getElements,
		getLayers:   getLayers,
		app:         app,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.Default().WithPrefix("dispatcher")
	}
	m.tracker = NewTracker(m.sink, m.logger)
	if m.config.EnableMetrics {
		m.metrics = NewMetrics()
	}
	return m
}

// RegisterAction inserts or replaces an action by name.
func (m *Manager) RegisterAction(a action.Action) {
	m.registry.Register(a)
}

// RegisterAll registers actions in order; later entries win.
func (m *Manager) RegisterAll(actions []action.Action) {
	m.registry.RegisterAll(actions)
}

// Action returns the action registered under name.
func (m *Manager) Action(name action.Name) (action.Action, bool) {
	return m.registry.Get(name)
}

// Actions returns every registered action sorted by name.
func (m *Manager) Actions() []action.Action {
	return m.registry.All()
}

// Registry returns the underlying action registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Metrics returns dispatch statistics, or nil if metrics are disabled.
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}

// HandleKeyDown dispatches event to the single action whose key test
// matches it. It returns true if an action was performed, in which case
// the event has been marked as consumed.
func (m *Manager) HandleKeyDown(event *key.Event) bool {
	if event == nil {
		return false
	}

	props := m.props()
	state := m.getState()
	elements := m.getElements()

	var candidates []action.Action
	for _, a := range m.registry.All() {
		if a.KeyTest == nil || !props.UIOptions.Visible(a.Name) {
			continue
		}
		if a.KeyTest(*event, state, elements) {
			candidates = append(candidates, a)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].KeyPriority > candidates[j].KeyPriority
	})

	if len(candidates) != 1 {
		if len(candidates) > 1 {
			names := make([]action.Name, len(candidates))
			for i, a := range candidates {
				names[i] = a.Name
			}
			m.logger.Warn("canceling as multiple actions match this shortcut",
				"key", event.String(), "actions", names)
			if m.metrics != nil {
				m.metrics.RecordConflict(names)
			}
		}
		return false
	}

	a := candidates[0]
	if state.ViewModeEnabled && !a.ViewMode {
		if m.metrics != nil {
			m.metrics.RecordSuppressed(a.Name)
		}
		return false
	}

	layers := m.getLayers()
	m.tracker.Track(a, action.SourceKeyboard, state, elements, layers, m.app, nil)

	event.PreventDefault()
	event.StopPropagation()
	m.perform(a, action.SourceKeyboard, elements, layers, state, nil)
	return true
}

// ExecuteAction performs a against current snapshots without enablement
// or view-mode checks. An empty source reports as SourceAPI.
func (m *Manager) ExecuteAction(a action.Action, source action.Source) {
	if source == "" {
		source = action.SourceAPI
	}
	elements := m.getElements()
	layers := m.getLayers()
	state := m.getState()

	m.tracker.Track(a, source, state, elements, layers, m.app, nil)
	m.perform(a, source, elements, layers, state, nil)
}

// RenderAction returns the panel bound to the named action. It returns
// false if the action is missing, has no panel component or is hidden
// by the host's canvas actions.
func (m *Manager) RenderAction(name action.Name, data any) (action.Panel, bool) {
	a, ok := m.registry.Get(name)
	if !ok || a.PanelComponent == nil {
		return nil, false
	}
	props := m.props()
	if !props.UIOptions.Visible(name) {
		return nil, false
	}

	updateData := func(formState any) {
		elements := m.getElements()
		layers := m.getLayers()
		state := m.getState()

		m.tracker.Track(a, action.SourceUI, state, elements, layers, m.app, formState)
		m.perform(a, action.SourceUI, elements, layers, state, formState)
	}

	panel := a.PanelComponent(action.PanelProps{
		Elements:   m.getElements(),
		Layers:     m.getLayers(),
		AppState:   m.getState(),
		AppProps:   props,
		Data:       data,
		UpdateData: updateData,
	})
	if panel == nil {
		return nil, false
	}
	return panel, true
}

// IsActionEnabled evaluates the action's predicate against current state.
func (m *Manager) IsActionEnabled(a action.Action) bool {
	return a.Enabled(m.getElements(), m.getLayers(), m.getState(), m.props(), m.app)
}

// Wait blocks until every deferred result started so far has been
// delivered to the updater.
func (m *Manager) Wait() {
	m.pending.Wait()
}

func (m *Manager) props() action.Props {
	if m.app == nil {
		return action.Props{}
	}
	return m.app.Props()
}

// perform runs the performer and routes its outcome to the updater.
func (m *Manager) perform(a action.Action, source action.Source, elements []*scene.Element, layers []*scene.Layer, state scene.AppState, value any) {
	if a.Perform == nil {
		m.logger.Error("action not performed", "action", a.Name, "err", ErrNoPerformer)
		return
	}

	start := time.Now()
	outcome, ok := m.call(a, elements, layers, state, value)
	if m.metrics != nil {
		m.metrics.RecordDispatch(a.Name, source, time.Since(start))
	}
	if !ok {
		return
	}

	if !outcome.IsDeferred() {
		r, _ := outcome.Wait()
		m.apply(r)
		return
	}

	m.pending.Add(1)
	go func() {
		r, err := outcome.Wait()
		if err != nil {
			m.logger.Error("deferred action failed", "action", a.Name, "err", err)
			if m.metrics != nil {
				m.metrics.RecordPanic(a.Name)
			}
			m.pending.Done()
			return
		}
		if m.schedule == nil {
			m.apply(r)
			m.pending.Done()
			return
		}
		m.schedule(func() {
			defer m.pending.Done()
			m.apply(r)
		})
	}()
}

func (m *Manager) call(a action.Action, elements []*scene.Element, layers []*scene.Layer, state scene.AppState, value any) (outcome action.Outcome, ok bool) {
	if !m.config.RecoverFromPanic {
		return a.Perform(elements, layers, state, value, m.app), true
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			m.logger.Error("action panicked", "action", a.Name,
				"err", fmt.Errorf("%w: %v", ErrPanic, r), "stack", string(stack[:n]))
			if m.metrics != nil {
				m.metrics.RecordPanic(a.Name)
			}
			ok = false
		}
	}()
	return a.Perform(elements, layers, state, value, m.app), true
}

func (m *Manager) apply(r action.Result) {
	if m.updater == nil {
		return
	}
	m.updateMu.Lock()
	defer m.updateMu.Unlock()
	m.updater(r)
}
