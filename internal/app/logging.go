package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/dshills/drawstorm/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the application logger from the log section. Output
// goes to cfg.File when set, otherwise to stderr. An empty format picks
// text on a terminal and logfmt elsewhere. The returned closer releases
// the log file.
func NewLogger(cfg config.LogConfig, stderr *os.File) (*log.Logger, io.Closer, error) {
	var (
		out    io.Writer = stderr
		closer io.Closer = nopCloser{}
		tty              = stderr != nil && term.IsTerminal(int(stderr.Fd()))
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer, tty = f, f, false
	}

	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "drawstorm",
		ReportTimestamp: true,
		Formatter:       formatter(cfg.Format, tty),
	})
	return logger, closer, nil
}

func formatter(format string, tty bool) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	case "text":
		return log.TextFormatter
	}
	if tty {
		return log.TextFormatter
	}
	return log.LogfmtFormatter
}
