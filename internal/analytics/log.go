package analytics

import (
	"github.com/charmbracelet/log"
)

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging at Info on the given logger.
// A nil logger uses the package default.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger.WithPrefix("analytics")}
}

// Track implements Sink.
func (s *LogSink) Track(event Event) error {
	s.logger.Info("action tracked", "category", event.Category, "action", event.Action, "label", event.Label)
	return nil
}
