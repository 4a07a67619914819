package plugin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
	plua "github.com/dshills/drawstorm/internal/plugin/lua"
)

// Host loads plugin scripts and owns their Lua states.
type Host struct {
	mu      sync.Mutex
	logger  *log.Logger
	timeout time.Duration
	scripts []*Script
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger sets the logger used for script output and failures.
func WithLogger(logger *log.Logger) HostOption {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTimeout bounds every script call.
func WithTimeout(d time.Duration) HostOption {
	return func(h *Host) {
		h.timeout = d
	}
}

// NewHost creates an empty plugin host.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		logger:  log.Default().WithPrefix("plugin"),
		timeout: plua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// LoadAll loads every plugin the loader discovers. A failing plugin is
// logged and skipped; the failures are returned joined.
func (h *Host) LoadAll(loader *Loader) error {
	infos, err := loader.Discover()
	if err != nil {
		return err
	}

	var errs []error
	for _, info := range infos {
		if _, err := h.LoadFile(info.Name, info.Path); err != nil {
			h.logger.Error("plugin failed to load", "plugin", info.Name, "path", info.Path, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadFile runs the script at path and keeps it when it loads cleanly.
func (h *Host) LoadFile(name, path string) (*Script, error) {
	s := newScript(name, path, h.logger, plua.WithExecutionTimeout(h.timeout))
	if err := s.state.DoFile(path); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("load plugin %s: %w", name, err)
	}
	return h.add(s), nil
}

// LoadString runs an inline script.
func (h *Host) LoadString(name, code string) (*Script, error) {
	s := newScript(name, "", h.logger, plua.WithExecutionTimeout(h.timeout))
	if err := s.state.DoString(code); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("load plugin %s: %w", name, err)
	}
	return h.add(s), nil
}

func (h *Host) add(s *Script) *Script {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scripts = append(h.scripts, s)
	h.logger.Debug("plugin loaded", "plugin", s.name, "actions", len(s.actions))
	return s
}

// Scripts returns the loaded scripts in load order.
func (h *Host) Scripts() []*Script {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Script, len(h.scripts))
	copy(out, h.scripts)
	return out
}

// Actions returns every scripted action in load then declaration order.
func (h *Host) Actions() []action.Action {
	var out []action.Action
	for _, s := range h.Scripts() {
		out = append(out, s.Actions()...)
	}
	return out
}

// Close releases every script.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for _, s := range h.scripts {
		errs = append(errs, s.Close())
	}
	h.scripts = nil
	return errors.Join(errs...)
}
