package dispatcher

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/drawstorm/internal/analytics"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

// testShell stands in for the application shell: it owns the state and
// records every result handed to the updater.
type testShell struct {
	mu       sync.Mutex
	state    scene.AppState
	elements []*scene.Element
	layers   []*scene.Layer
	props    action.Props
	device   action.Device
	results  []action.Result
}

func newTestShell() *testShell {
	return &testShell{
		state:  scene.DefaultAppState(),
		layers: []*scene.Layer{scene.NewLayer("Default")},
	}
}

func (s *testShell) apply(r action.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	if r.AppState != nil {
		s.state = *r.AppState
	}
	if r.Elements != nil {
		s.elements = r.Elements
	}
}

func (s *testShell) State() scene.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *testShell) setState(state scene.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *testShell) Elements() []*scene.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elements
}

func (s *testShell) Layers() []*scene.Layer { return s.layers }

func (s *testShell) resultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

func (s *testShell) Device() action.Device                    { return s.device }
func (s *testShell) Files() scene.Files                       { return nil }
func (s *testShell) Canvas() action.Canvas                    { return nil }
func (s *testShell) Props() action.Props                      { return s.props }
func (s *testShell) PasteFromClipboard(*action.ClipboardEvent) {}

func newTestManager(s *testShell, opts ...Option) (*Manager, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(s.apply, s.State, s.Elements, s.Layers, s, opts...), &buf
}

// runeAction returns an action whose shortcut is the unmodified rune r.
func runeAction(name action.Name, r rune) action.Action {
	return action.Action{
		Name: name,
		Perform: func(_ []*scene.Element, _ []*scene.Layer, state scene.AppState, _ any, _ action.App) action.Outcome {
			next := state.Clone()
			next.ErrorMessage = string(name)
			return action.Immediate(action.NoHistory().WithState(next))
		},
		KeyTest: func(e key.Event, _ scene.AppState, _ []*scene.Element) bool {
			return e.Rune == r && e.Modifiers.IsEmpty()
		},
	}
}

func TestHandleKeyDownSingleMatch(t *testing.T) {
	s := newTestShell()
	m, _ := newTestManager(s)
	m.RegisterAll([]action.Action{runeAction("a", 'a'), runeAction("b", 'b')})

	ev := key.NewRuneEvent('b', key.ModNone)
	if !m.HandleKeyDown(&ev) {
		t.Fatal("HandleKeyDown = false, want true")
	}
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("dispatched event should be marked consumed")
	}
	if s.resultCount() != 1 {
		t.Fatalf("results = %d, want 1", s.resultCount())
	}
	if got := s.State().ErrorMessage; got != "b" {
		t.Errorf("performed %q, want b", got)
	}
}

func TestHandleKeyDownNoMatch(t *testing.T) {
	s := newTestShell()
	m, _ := newTestManager(s)
	m.RegisterAction(runeAction("a", 'a'))

	ev := key.NewRuneEvent('z', key.ModNone)
	if m.HandleKeyDown(&ev) {
		t.Error("HandleKeyDown = true for unbound key")
	}
	if ev.DefaultPrevented() {
		t.Error("unhandled event should not be consumed")
	}
	if s.resultCount() != 0 {
		t.Errorf("results = %d, want 0", s.resultCount())
	}
	if m.HandleKeyDown(nil) {
		t.Error("HandleKeyDown(nil) = true")
	}
}

func TestHandleKeyDownConflict(t *testing.T) {
	s := newTestShell()
	m, buf := newTestManager(s, WithConfig(DefaultConfig().WithMetrics()))

	high := runeAction("high", 'a')
	high.KeyPriority = 10
	m.RegisterAll([]action.Action{runeAction("low", 'a'), high})

	ev := key.NewRuneEvent('a', key.ModNone)
	if m.HandleKeyDown(&ev) {
		t.Fatal("HandleKeyDown = true with two matching actions")
	}
	if s.resultCount() != 0 {
		t.Errorf("results = %d, want 0", s.resultCount())
	}
	if !strings.Contains(buf.String(), "canceling as multiple actions match this shortcut") {
		t.Errorf("conflict not logged:\n%s", buf.String())
	}

	if m.Metrics().TotalConflicts() != 1 {
		t.Errorf("conflicts = %d, want 1", m.Metrics().TotalConflicts())
	}
	names := m.Metrics().LastConflict()
	if len(names) != 2 || names[0] != "high" {
		t.Errorf("LastConflict = %v, want high first", names)
	}
}

func TestHandleKeyDownCanvasActions(t *testing.T) {
	s := newTestShell()
	s.props.UIOptions.CanvasActions = map[action.Name]bool{"hidden": false}
	m, _ := newTestManager(s)
	m.RegisterAll([]action.Action{runeAction("hidden", 'a'), runeAction("shown", 'a')})

	ev := key.NewRuneEvent('a', key.ModNone)
	if !m.HandleKeyDown(&ev) {
		t.Fatal("hidden action should not take part in resolution")
	}
	if got := s.State().ErrorMessage; got != "shown" {
		t.Errorf("performed %q, want shown", got)
	}
}

func TestHandleKeyDownViewMode(t *testing.T) {
	s := newTestShell()
	state := scene.DefaultAppState()
	state.ViewModeEnabled = true
	s.setState(state)
	m, buf := newTestManager(s, WithConfig(DefaultConfig().WithMetrics()))

	safe := runeAction("safe", 's')
	safe.ViewMode = true
	m.RegisterAll([]action.Action{runeAction("edit", 'e'), safe})

	ev := key.NewRuneEvent('e', key.ModNone)
	if m.HandleKeyDown(&ev) {
		t.Error("edit action ran in view mode")
	}
	if s.resultCount() != 0 {
		t.Errorf("results = %d, want 0", s.resultCount())
	}
	if buf.Len() != 0 {
		t.Errorf("view-mode suppression should be silent, got:\n%s", buf.String())
	}
	if m.Metrics().TotalSuppressed() != 1 {
		t.Errorf("suppressed = %d, want 1", m.Metrics().TotalSuppressed())
	}

	ev = key.NewRuneEvent('s', key.ModNone)
	if !m.HandleKeyDown(&ev) {
		t.Error("view-mode action should run in view mode")
	}
}

func TestExecuteActionDefaultSource(t *testing.T) {
	s := newTestShell()
	s.device.IsMobile = true
	var events []analytics.Event
	sink := analytics.SinkFunc(func(e analytics.Event) error {
		events = append(events, e)
		return nil
	})
	m, _ := newTestManager(s, WithSink(sink))

	a := runeAction("copy", 'c')
	a.TrackEvent = action.Track("element")

	m.ExecuteAction(a, "")
	m.ExecuteAction(a, action.SourceContextMenu)

	if s.resultCount() != 2 {
		t.Fatalf("results = %d, want 2", s.resultCount())
	}
	if len(events) != 2 {
		t.Fatalf("tracked %d events, want 2", len(events))
	}
	want := analytics.Event{Category: "element", Action: "copy", Label: "api (mobile)"}
	if events[0] != want {
		t.Errorf("event = %+v, want %+v", events[0], want)
	}
	if events[1].Label != "contextMenu (mobile)" {
		t.Errorf("label = %q", events[1].Label)
	}
}

func TestExecuteActionIgnoresGates(t *testing.T) {
	s := newTestShell()
	state := scene.DefaultAppState()
	state.ViewModeEnabled = true
	s.setState(state)
	m, _ := newTestManager(s)

	a := runeAction("edit", 'e')
	a.Predicate = func([]*scene.Element, []*scene.Layer, scene.AppState, action.Props, action.App) bool { return false }

	m.ExecuteAction(a, action.SourceAPI)
	if s.resultCount() != 1 {
		t.Errorf("results = %d, want 1", s.resultCount())
	}
	if m.IsActionEnabled(a) {
		t.Error("IsActionEnabled ignored the predicate")
	}
}

func TestTrackingFailureDoesNotBlockAction(t *testing.T) {
	s := newTestShell()
	m, buf := newTestManager(s, WithSink(analytics.SinkFunc(func(analytics.Event) error {
		return errors.New("sink down")
	})))

	a := runeAction("toggle", 't')
	a.TrackEvent = action.Track("canvas").When(func(scene.AppState, []*scene.Element, any) bool {
		panic("predicate exploded")
	})
	b := runeAction("other", 'o')
	b.TrackEvent = action.TrackFlag()
	m.RegisterAll([]action.Action{a, b})

	for _, r := range []rune{'t', 'o'} {
		ev := key.NewRuneEvent(r, key.ModNone)
		if !m.HandleKeyDown(&ev) {
			t.Fatalf("HandleKeyDown(%q) = false", r)
		}
	}
	if s.resultCount() != 2 {
		t.Errorf("results = %d, want 2", s.resultCount())
	}
	if got := strings.Count(buf.String(), "error while logging action"); got != 2 {
		t.Errorf("logged %d tracking failures, want 2:\n%s", got, buf.String())
	}
}

func TestRenderAction(t *testing.T) {
	s := newTestShell()
	s.props.UIOptions.CanvasActions = map[action.Name]bool{"hidden": false}

	var events []analytics.Event
	m, _ := newTestManager(s, WithSink(analytics.SinkFunc(func(e analytics.Event) error {
		events = append(events, e)
		return nil
	})))

	var seenGrid int
	var seenValue any
	grid := action.Action{
		Name:       "grid",
		TrackEvent: action.TrackFlag(),
		Perform: func(_ []*scene.Element, _ []*scene.Layer, state scene.AppState, value any, _ action.App) action.Outcome {
			seenGrid = state.GridSize
			seenValue = value
			return action.Immediate(action.NoHistory())
		},
		PanelComponent: action.Checkbox("Grid", func(s scene.AppState) bool { return s.GridSize != 0 }),
	}
	hidden := grid
	hidden.Name = "hidden"
	m.RegisterAll([]action.Action{grid, hidden, {Name: "plain"}})

	for _, name := range []action.Name{"missing", "plain", "hidden"} {
		if _, ok := m.RenderAction(name, nil); ok {
			t.Errorf("RenderAction(%q) rendered a panel", name)
		}
	}

	panel, ok := m.RenderAction("grid", "extra")
	if !ok {
		t.Fatal("RenderAction(grid) rendered nothing")
	}
	if panel.View() != "[ ] Grid" {
		t.Errorf("View = %q", panel.View())
	}

	state := scene.DefaultAppState()
	state.GridSize = 20
	s.setState(state)
	panel.Activate("form")

	if seenGrid != 20 {
		t.Errorf("performer saw gridSize %d, want fresh snapshot 20", seenGrid)
	}
	if seenValue != "form" {
		t.Errorf("performer value = %v, want form", seenValue)
	}
	if len(events) != 1 || events[0].Label != "ui (desktop)" {
		t.Errorf("tracked %+v, want one ui event", events)
	}
	if s.resultCount() != 1 {
		t.Errorf("results = %d, want 1", s.resultCount())
	}
}

func deferredAction(name action.Name, r rune, release <-chan struct{}) action.Action {
	a := runeAction(name, r)
	a.Perform = func(_ []*scene.Element, _ []*scene.Layer, state scene.AppState, _ any, _ action.App) action.Outcome {
		return action.Defer(func() action.Result {
			<-release
			next := state.Clone()
			next.ErrorMessage = string(name)
			return action.NoHistory().WithState(next)
		})
	}
	return a
}

func TestDeferredResultsResolutionOrder(t *testing.T) {
	order := make(chan string, 2)
	s := newTestShell()
	updater := func(r action.Result) {
		s.apply(r)
		order <- r.AppState.ErrorMessage
	}
	m := New(updater, s.State, s.Elements, s.Layers, s, WithLogger(log.New(&bytes.Buffer{})))

	releaseA := make(chan struct{})
	releaseB := make(chan struct{})
	m.RegisterAll([]action.Action{
		deferredAction("a", 'a', releaseA),
		deferredAction("b", 'b', releaseB),
	})

	for _, r := range []rune{'a', 'b'} {
		ev := key.NewRuneEvent(r, key.ModNone)
		if !m.HandleKeyDown(&ev) {
			t.Fatalf("HandleKeyDown(%q) = false", r)
		}
	}
	if s.resultCount() != 0 {
		t.Fatal("deferred result delivered before resolution")
	}

	close(releaseB)
	expectNext(t, order, "b")
	close(releaseA)
	expectNext(t, order, "a")

	m.Wait()
	if s.resultCount() != 2 {
		t.Errorf("results = %d, want 2", s.resultCount())
	}
}

func expectNext(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("delivered %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
}

func TestDeferredResultsThroughScheduler(t *testing.T) {
	s := newTestShell()
	var scheduled int
	var mu sync.Mutex
	m, _ := newTestManager(s, WithScheduler(func(fn func()) {
		mu.Lock()
		scheduled++
		mu.Unlock()
		fn()
	}))

	release := make(chan struct{})
	close(release)
	m.ExecuteAction(deferredAction("a", 'a', release), action.SourceAPI)
	m.Wait()

	if scheduled != 1 {
		t.Errorf("scheduled = %d, want 1", scheduled)
	}
	if s.resultCount() != 1 {
		t.Errorf("results = %d, want 1", s.resultCount())
	}
}

func TestPanickingPerformer(t *testing.T) {
	s := newTestShell()
	m, buf := newTestManager(s, WithConfig(DefaultConfig().WithMetrics()))

	a := runeAction("boom", 'x')
	a.Perform = func([]*scene.Element, []*scene.Layer, scene.AppState, any, action.App) action.Outcome {
		panic("kaboom")
	}
	m.RegisterAction(a)

	ev := key.NewRuneEvent('x', key.ModNone)
	if !m.HandleKeyDown(&ev) {
		t.Error("HandleKeyDown should report the action as dispatched")
	}
	if s.resultCount() != 0 {
		t.Errorf("results = %d, want 0", s.resultCount())
	}
	if !strings.Contains(buf.String(), "action panicked") {
		t.Errorf("panic not logged:\n%s", buf.String())
	}
	if m.Metrics().TotalPanics() != 1 {
		t.Errorf("panics = %d, want 1", m.Metrics().TotalPanics())
	}
}

func TestDeferredPanicProducesNoUpdate(t *testing.T) {
	s := newTestShell()
	m, buf := newTestManager(s)

	a := runeAction("boom", 'x')
	a.Perform = func([]*scene.Element, []*scene.Layer, scene.AppState, any, action.App) action.Outcome {
		return action.Defer(func() action.Result { panic("later") })
	}
	m.ExecuteAction(a, action.SourceAPI)
	m.Wait()

	if s.resultCount() != 0 {
		t.Errorf("results = %d, want 0", s.resultCount())
	}
	if !strings.Contains(buf.String(), "deferred action failed") {
		t.Errorf("deferred panic not logged:\n%s", buf.String())
	}
}

func TestDispatchMetrics(t *testing.T) {
	s := newTestShell()
	m, _ := newTestManager(s, WithConfig(DefaultConfig().WithMetrics()))
	m.RegisterAction(runeAction("a", 'a'))

	for range 3 {
		ev := key.NewRuneEvent('a', key.ModNone)
		m.HandleKeyDown(&ev)
	}
	m.ExecuteAction(runeAction("b", 'b'), "")

	if got := m.Metrics().TotalDispatches(); got != 4 {
		t.Errorf("dispatches = %d, want 4", got)
	}
	stats := m.Metrics().ActionStats("a")
	if stats == nil || stats.DispatchCount != 3 || stats.LastSource != action.SourceKeyboard {
		t.Errorf("stats(a) = %+v", stats)
	}
	top := m.Metrics().TopActions(1)
	if len(top) != 1 || top[0].Name != "a" {
		t.Errorf("TopActions = %+v", top)
	}

	m.Metrics().Reset()
	if m.Metrics().Snapshot().TotalDispatches != 0 {
		t.Error("Reset did not clear dispatches")
	}
}

func TestNoPerformer(t *testing.T) {
	s := newTestShell()
	m, buf := newTestManager(s)
	m.ExecuteAction(action.Action{Name: "empty"}, "")

	if s.resultCount() != 0 {
		t.Errorf("results = %d, want 0", s.resultCount())
	}
	if !strings.Contains(buf.String(), ErrNoPerformer.Error()) {
		t.Errorf("missing performer not logged:\n%s", buf.String())
	}
}
