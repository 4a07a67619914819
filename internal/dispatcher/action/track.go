package action

import "github.com/dshills/drawstorm/internal/scene"

// DefaultTrackCategory is reported for actions tracked with TrackFlag.
const DefaultTrackCategory = "action"

// TrackPredicate decides per invocation whether to report.
type TrackPredicate func(state scene.AppState, elements []*scene.Element, value any) bool

type trackKind uint8

const (
	trackNone trackKind = iota
	trackFlag
	trackDescriptor
)

// TrackEvent is the analytics declaration of an action. The zero value
// disables tracking; TrackFlag enables it with defaults; Track builds a
// descriptor that may name the event and filter with a predicate.
type TrackEvent struct {
	kind trackKind

	// Category groups the event in analytics.
	Category string

	// Action overrides the reported event name (default: action name).
	Action string

	// Predicate filters invocations. Nil reports every invocation.
	Predicate TrackPredicate
}

// TrackFlag enables tracking under DefaultTrackCategory.
func TrackFlag() TrackEvent {
	return TrackEvent{kind: trackFlag}
}

// Track returns a tracking descriptor for the given category.
func Track(category string) TrackEvent {
	return TrackEvent{kind: trackDescriptor, Category: category}
}

// Named returns a copy reporting under the given event name.
func (t TrackEvent) Named(action string) TrackEvent {
	t.Action = action
	if t.kind == trackNone {
		t.kind = trackDescriptor
	}
	return t
}

// When returns a copy filtered by the given predicate.
func (t TrackEvent) When(p TrackPredicate) TrackEvent {
	t.Predicate = p
	if t.kind == trackNone {
		t.kind = trackDescriptor
	}
	return t
}

// Enabled reports whether the action is tracked at all.
func (t TrackEvent) Enabled() bool {
	return t.kind != trackNone
}

// IsDescriptor reports whether the declaration carries descriptor fields.
func (t TrackEvent) IsDescriptor() bool {
	return t.kind == trackDescriptor
}

// EventCategory returns the category to report.
func (t TrackEvent) EventCategory() string {
	if t.Category == "" {
		return DefaultTrackCategory
	}
	return t.Category
}

// EventName returns the event name to report for the named action.
func (t TrackEvent) EventName(name Name) string {
	if t.Action != "" {
		return t.Action
	}
	return string(name)
}
