package analytics

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Sink names accepted by Build.
const (
	SinkLog        = "log"
	SinkPrometheus = "prometheus"
	SinkTrace      = "trace"
)

// ErrUnknownSink indicates Build was given an unrecognized sink name.
var ErrUnknownSink = errors.New("analytics: unknown sink")

// Options supplies the dependencies sinks may need.
type Options struct {
	Logger         *log.Logger
	Registerer     prometheus.Registerer
	TracerProvider trace.TracerProvider
}

// Build assembles a sink from configured names. No names yields Nop.
func Build(names []string, opts Options) (Sink, error) {
	var sinks Multi
	for _, name := range names {
		switch name {
		case SinkLog:
			sinks = append(sinks, NewLogSink(opts.Logger))
		case SinkPrometheus:
			s, err := NewPrometheusSink(opts.Registerer)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, s)
		case SinkTrace:
			sinks = append(sinks, NewTraceSink(opts.TracerProvider))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSink, name)
		}
	}
	switch len(sinks) {
	case 0:
		return Nop{}, nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
