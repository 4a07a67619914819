package app

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/drawstorm/internal/analytics"
	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/config"
	"github.com/dshills/drawstorm/internal/dispatcher"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/dispatcher/handlers"
	"github.com/dshills/drawstorm/internal/dispatcher/handlers/view"
	"github.com/dshills/drawstorm/internal/export"
	"github.com/dshills/drawstorm/internal/input/keymap"
	"github.com/dshills/drawstorm/internal/plugin"
	"github.com/dshills/drawstorm/internal/scene"
)

// Options configures New. Zero fields fall back to defaults.
type Options struct {
	// Config supplies settings. Nil uses config.Default().
	Config *config.Config

	// Document is the initial scene. Nil starts an empty canvas.
	Document *scene.Document

	// Clipboard is the system clipboard bridge.
	Clipboard sysclip.Bridge

	// Canvas is the render surface. Nil means headless.
	Canvas action.Canvas

	// Logger overrides the logger built from Config.Log.
	Logger *log.Logger

	// Registerer receives prometheus tracking counters.
	Registerer prometheus.Registerer

	// TracerProvider receives tracking spans.
	TracerProvider trace.TracerProvider

	// Scheduler runs deferred result delivery.
	Scheduler dispatcher.Scheduler
}

// New builds an application: it loads the scene, assembles the tracking
// sinks, registers the built-in actions followed by plugin actions, and
// applies the configured keymaps.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	a := &Application{
		state:     scene.DefaultAppState(),
		layers:    []*scene.Layer{{ID: "default", Name: "Default", Visible: true}},
		files:     scene.Files{},
		canvas:    opts.Canvas,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
	}

	if a.logger == nil {
		logger, closer, err := NewLogger(cfg.Log, os.Stderr)
		if err != nil {
			return nil, &InitError{Component: "logger", Err: err}
		}
		a.logger = logger
		a.closers = append(a.closers, closer)
	}
	if a.clipboard == nil {
		a.clipboard = sysclip.NewSystem()
	}
	if doc := opts.Document; doc != nil {
		a.state = doc.AppState.Clone()
		a.elements = doc.Elements
		if len(doc.Layers) > 0 {
			a.layers = doc.Layers
		}
		if doc.Files != nil {
			a.files = doc.Files
		}
	}
	a.device, a.props = deviceAndProps(cfg)
	a.state = pinModes(a.state, a.props)

	sink, err := buildSink(cfg, opts, a.logger)
	if err != nil {
		return nil, &InitError{Component: "tracking", Err: err}
	}

	mopts := []dispatcher.Option{
		dispatcher.WithConfig(dispatcherConfig(cfg)),
		dispatcher.WithLogger(a.logger.WithPrefix("dispatcher")),
		dispatcher.WithSink(sink),
	}
	if opts.Scheduler != nil {
		mopts = append(mopts, dispatcher.WithScheduler(opts.Scheduler))
	}
	a.manager = dispatcher.New(a.apply, a.State, a.Elements, a.Layers, a, mopts...)

	actions := handlers.Builtin(handlers.Deps{
		Clipboard: a.clipboard,
		Exporter:  export.NewCanvasExporter(a.clipboard),
		Logger:    a.logger.WithPrefix("actions"),
	})

	if cfg.Plugins.Enabled && len(cfg.Plugins.Paths) > 0 {
		a.plugins = plugin.NewHost(plugin.WithLogger(a.logger.WithPrefix("plugin")))
		if err := a.plugins.LoadAll(plugin.NewLoader(plugin.WithPaths(cfg.Plugins.Paths...))); err != nil {
			a.logger.Warn("some plugins failed to load", "err", err)
		}
		actions = append(actions, a.plugins.Actions()...)
	}

	km, err := loadKeymap(cfg)
	if err != nil {
		a.logger.Warn("keymap problems", "err", err)
	}
	actions, err = km.Apply(actions)
	if err != nil {
		a.logger.Warn("keymap bindings skipped", "err", err)
	}
	for _, c := range km.ConflictsWith(actions) {
		a.logger.Warn("shortcut shared by several actions", "conflict", c.String())
	}

	a.manager.RegisterAll(actions)
	a.logger.Debug("application ready", "actions", a.manager.Registry().Count())
	return a, nil
}

// ApplyConfig updates device and props from a reloaded configuration.
// Registered actions and shortcuts are unchanged.
func (a *Application) ApplyConfig(cfg *config.Config) {
	device, props := deviceAndProps(cfg)

	a.mu.Lock()
	a.device, a.props = device, props
	onChange := a.applyLocked(action.NoHistory().WithState(a.state))
	a.mu.Unlock()

	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		a.logger.SetLevel(lvl)
	}
	if onChange != nil {
		onChange()
	}
}

func deviceAndProps(cfg *config.Config) (action.Device, action.Props) {
	device := action.Device{
		IsMobile:      cfg.Device.Mobile,
		IsTouchScreen: cfg.Device.TouchScreen,
	}
	visible := make(map[action.Name]bool, len(cfg.UI.CanvasActions))
	for name, v := range cfg.UI.CanvasActions {
		visible[action.Name(name)] = v
	}
	props := action.Props{
		UIOptions:       action.UIOptions{CanvasActions: visible},
		GridModeEnabled: cfg.Host.GridMode,
		ViewModeEnabled: cfg.Host.ViewMode,
		ZenModeEnabled:  cfg.Host.ZenMode,
	}
	return device, props
}

// pinModes forces pinned modes onto the state.
func pinModes(state scene.AppState, props action.Props) scene.AppState {
	next := state.Clone()
	if p := props.GridModeEnabled; p != nil {
		if *p && next.GridSize == 0 {
			next.GridSize = view.GridSize
		} else if !*p {
			next.GridSize = 0
		}
	}
	if p := props.ViewModeEnabled; p != nil {
		next.ViewModeEnabled = *p
	}
	if p := props.ZenModeEnabled; p != nil {
		next.ZenModeEnabled = *p
	}
	return next
}

func dispatcherConfig(cfg *config.Config) dispatcher.Config {
	dc := dispatcher.DefaultConfig().WithPanicRecovery(cfg.Dispatcher.RecoverFromPanic)
	if cfg.Dispatcher.Metrics {
		dc = dc.WithMetrics()
	}
	return dc
}

func buildSink(cfg *config.Config, opts Options, logger *log.Logger) (analytics.Sink, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return analytics.Build(cfg.Tracking.Sinks, analytics.Options{
		Logger:         logger.WithPrefix("tracking"),
		Registerer:     reg,
		TracerProvider: tp,
	})
}

// loadKeymap merges keymap files in path order, then the [keys] section.
func loadKeymap(cfg *config.Config) (*keymap.Keymap, error) {
	km := keymap.NewKeymap("effective")

	var errs []error
	if len(cfg.Keymaps.Paths) > 0 {
		loader := keymap.NewLoader()
		for _, p := range cfg.Keymaps.Paths {
			loader.AddSearchPath(p)
		}
		maps, err := loader.LoadAll()
		if err != nil {
			errs = append(errs, err)
		}
		for _, m := range maps {
			km = km.Merge(m)
		}
	}
	km = km.Merge(cfg.Keymap())
	return km, errors.Join(errs...)
}
