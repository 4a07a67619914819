package analytics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink counts events per category, action and label.
type PrometheusSink struct {
	events *prometheus.CounterVec
}

// NewPrometheusSink registers the event counter with reg. A counter
// already registered by an earlier sink is reused.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "drawstorm",
		Name:      "action_events_total",
		Help:      "Tracked action invocations by category, action and source label.",
	}, []string{"category", "action", "label"})

	if err := reg.Register(events); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, fmt.Errorf("analytics: register counter: %w", err)
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("analytics: register counter: %w", err)
		}
		events = existing
	}
	return &PrometheusSink{events: events}, nil
}

// Track implements Sink.
func (s *PrometheusSink) Track(event Event) error {
	c, err := s.events.GetMetricWithLabelValues(event.Category, event.Action, event.Label)
	if err != nil {
		return fmt.Errorf("analytics: counter for %s: %w", event, err)
	}
	c.Inc()
	return nil
}

// Collector exposes the underlying counter vec.
func (s *PrometheusSink) Collector() *prometheus.CounterVec {
	return s.events
}
