package action

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

func TestImmediateOutcome(t *testing.T) {
	state := scene.DefaultAppState()
	o := Immediate(NoHistory().WithState(state))

	if o.IsDeferred() {
		t.Fatal("Immediate outcome reports deferred")
	}
	select {
	case <-o.Done():
	default:
		t.Fatal("Immediate outcome Done channel should be closed")
	}

	r, err := o.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if r.AppState == nil {
		t.Error("expected state in result")
	}
}

func TestDeferredOutcome(t *testing.T) {
	release := make(chan struct{})
	o := Defer(func() Result {
		<-release
		return NoHistory().WithHistory(true)
	})

	if !o.IsDeferred() {
		t.Fatal("Defer outcome should be deferred")
	}
	select {
	case <-o.Done():
		t.Fatal("deferred outcome resolved before release")
	default:
	}

	close(release)
	r, err := o.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !r.CommitToHistory {
		t.Error("deferred result lost CommitToHistory")
	}
}

func TestDeferredOutcomePanic(t *testing.T) {
	o := Defer(func() Result {
		panic("exploded")
	})

	_, err := o.Wait()
	if !errors.Is(err, ErrPerformerPanic) {
		t.Fatalf("Wait error = %v, want ErrPerformerPanic", err)
	}
	if !strings.Contains(err.Error(), "exploded") {
		t.Errorf("panic value missing from error: %v", err)
	}
}

func TestFailedResult(t *testing.T) {
	state := scene.DefaultAppState()
	r := Failed(state, errors.New("boom"))

	if r.AppState == nil || r.AppState.ErrorMessage != "boom" {
		t.Fatalf("Failed state = %+v, want errorMessage boom", r.AppState)
	}
	if r.CommitToHistory {
		t.Error("Failed must not commit to history")
	}
	if state.ErrorMessage != "" {
		t.Error("Failed modified the input snapshot")
	}
}

func TestTrackEventVariants(t *testing.T) {
	var none TrackEvent
	if none.Enabled() {
		t.Error("zero TrackEvent should be disabled")
	}

	flag := TrackFlag()
	if !flag.Enabled() || flag.IsDescriptor() {
		t.Error("TrackFlag should be enabled and not a descriptor")
	}
	if flag.EventCategory() != DefaultTrackCategory {
		t.Errorf("flag category = %q, want %q", flag.EventCategory(), DefaultTrackCategory)
	}

	desc := Track("canvas").Named("toggle")
	if !desc.IsDescriptor() {
		t.Error("Track should build a descriptor")
	}
	if got := desc.EventName("gridMode"); got != "toggle" {
		t.Errorf("EventName = %q, want toggle", got)
	}
	if got := Track("element").EventName("copy"); got != "copy" {
		t.Errorf("EventName default = %q, want copy", got)
	}

	filtered := TrackEvent{}.When(func(scene.AppState, []*scene.Element, any) bool { return false })
	if !filtered.Enabled() || filtered.Predicate == nil {
		t.Error("When on zero value should enable a descriptor with predicate")
	}
}

func TestUIOptionsVisible(t *testing.T) {
	opts := UIOptions{CanvasActions: map[Name]bool{"copy": false, "paste": true}}

	tests := map[Name]bool{"copy": false, "paste": true, "cut": true}
	for name, want := range tests {
		if got := opts.Visible(name); got != want {
			t.Errorf("Visible(%q) = %v, want %v", name, got, want)
		}
	}
	if !(UIOptions{}).Visible("anything") {
		t.Error("nil CanvasActions should show everything")
	}
}

func TestActionEnabled(t *testing.T) {
	a := Action{Name: "x"}
	if !a.Enabled(nil, nil, scene.DefaultAppState(), Props{}, nil) {
		t.Error("action without predicate should be enabled")
	}

	a.Predicate = func([]*scene.Element, []*scene.Layer, scene.AppState, Props, App) bool { return false }
	if a.Enabled(nil, nil, scene.DefaultAppState(), Props{}, nil) {
		t.Error("predicate result ignored")
	}
}

func TestChordTest(t *testing.T) {
	prev := key.Darwin
	defer func() { key.Darwin = prev }()
	key.Darwin = false

	test := ChordTest(key.MustParseChord("Alt+Z"))
	if !test(key.NewRuneEvent('z', key.ModAlt), scene.DefaultAppState(), nil) {
		t.Error("ChordTest should match Alt+Z")
	}
	if test(key.NewRuneEvent('z', key.ModAlt|key.ModCtrl), scene.DefaultAppState(), nil) {
		t.Error("ChordTest should not match Ctrl+Alt+Z")
	}
}

func TestCheckboxPanel(t *testing.T) {
	var got any
	component := Checkbox("Show grid", func(s scene.AppState) bool { return s.GridSize != 0 })

	state := scene.DefaultAppState()
	state.GridSize = 20
	panel := component(PanelProps{AppState: state, UpdateData: func(v any) { got = v }})

	if panel.View() != "[x] Show grid" {
		t.Errorf("View = %q", panel.View())
	}
	panel.Activate("form")
	if got != "form" {
		t.Errorf("Activate forwarded %v, want form", got)
	}
}
