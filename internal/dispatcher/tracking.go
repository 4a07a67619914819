package dispatcher

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dshills/drawstorm/internal/analytics"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/scene"
)

// Tracker reports action invocations to an analytics sink.
// Failures inside the tracker are logged and never reach the caller.
type Tracker struct {
	sink   analytics.Sink
	logger *log.Logger
}

// NewTracker creates a tracker reporting to sink. A nil sink discards events.
func NewTracker(sink analytics.Sink, logger *log.Logger) *Tracker {
	if sink == nil {
		sink = analytics.Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{sink: sink, logger: logger}
}

// Track reports one invocation of a. It is a no-op unless the action
// declares a TrackEvent, and it skips reporting when the descriptor's
// predicate rejects the invocation.
func (t *Tracker) Track(
	a action.Action,
	source action.Source,
	state scene.AppState,
	elements []*scene.Element,
	_ []*scene.Layer,
	app action.App,
	value any,
) {
	if !a.TrackEvent.Enabled() {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("error while logging action", "action", a.Name, "panic", r)
		}
	}()

	if p := a.TrackEvent.Predicate; p != nil && !p(state, elements, value) {
		return
	}

	event := analytics.Event{
		Category: a.TrackEvent.EventCategory(),
		Action:   a.TrackEvent.EventName(a.Name),
		Label:    fmt.Sprintf("%s (%s)", source, deviceLabel(app)),
	}
	if err := t.sink.Track(event); err != nil {
		t.logger.Error("error while logging action", "action", a.Name, "err", err)
	}
}

func deviceLabel(app action.App) string {
	if app != nil && app.Device().IsMobile {
		return "mobile"
	}
	return "desktop"
}
