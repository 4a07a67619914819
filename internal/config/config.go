package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/drawstorm/internal/input/keymap"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DRAWSTORM_"

// Config holds every drawstorm setting.
type Config struct {
	Log        LogConfig         `toml:"log" yaml:"log" envPrefix:"LOG_"`
	Device     DeviceConfig      `toml:"device" yaml:"device"`
	Host       HostConfig        `toml:"host" yaml:"host"`
	UI         UIConfig          `toml:"ui" yaml:"ui"`
	Tracking   TrackingConfig    `toml:"tracking" yaml:"tracking" envPrefix:"TRACKING_"`
	Keys       map[string]string `toml:"keys" yaml:"keys"`
	Keymaps    KeymapsConfig     `toml:"keymaps" yaml:"keymaps"`
	Plugins    PluginsConfig     `toml:"plugins" yaml:"plugins" envPrefix:"PLUGINS_"`
	Dispatcher DispatcherConfig  `toml:"dispatcher" yaml:"dispatcher" envPrefix:"DISPATCHER_"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level" env:"LEVEL"`

	// Format is text, logfmt or json. Empty picks text on a terminal
	// and logfmt otherwise.
	Format string `toml:"format" yaml:"format" env:"FORMAT"`

	// File, when set, receives log output instead of stderr.
	File string `toml:"file" yaml:"file" env:"FILE"`
}

// DeviceConfig describes the client device.
type DeviceConfig struct {
	Mobile      bool `toml:"mobile" yaml:"mobile" env:"MOBILE"`
	TouchScreen bool `toml:"touch_screen" yaml:"touch_screen" env:"TOUCH_SCREEN"`
}

// HostConfig pins canvas modes. A nil pin leaves the mode user-controlled.
type HostConfig struct {
	GridMode *bool `toml:"grid_mode" yaml:"grid_mode" env:"GRID_MODE"`
	ViewMode *bool `toml:"view_mode" yaml:"view_mode" env:"VIEW_MODE"`
	ZenMode  *bool `toml:"zen_mode" yaml:"zen_mode" env:"ZEN_MODE"`
}

// UIConfig configures the user interface.
type UIConfig struct {
	// CanvasActions hides actions mapped to false.
	CanvasActions map[string]bool `toml:"canvas_actions" yaml:"canvas_actions"`
}

// TrackingConfig selects analytics sinks.
type TrackingConfig struct {
	Sinks []string `toml:"sinks" yaml:"sinks" env:"SINKS" envSeparator:","`
}

// KeymapsConfig lists directories of keymap files.
type KeymapsConfig struct {
	Paths []string `toml:"paths" yaml:"paths"`
}

// PluginsConfig configures scripted actions.
type PluginsConfig struct {
	Enabled bool     `toml:"enabled" yaml:"enabled" env:"ENABLED"`
	Paths   []string `toml:"paths" yaml:"paths" env:"PATHS" envSeparator:","`
}

// DispatcherConfig configures the action manager.
type DispatcherConfig struct {
	Metrics          bool `toml:"metrics" yaml:"metrics" env:"METRICS"`
	RecoverFromPanic bool `toml:"recover_from_panic" yaml:"recover_from_panic" env:"RECOVER_FROM_PANIC"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			CanvasActions: map[string]bool{},
		},
		Tracking: TrackingConfig{
			Sinks: []string{"log"},
		},
		Keys: map[string]string{},
		Plugins: PluginsConfig{
			Enabled: true,
		},
		Dispatcher: DispatcherConfig{
			RecoverFromPanic: true,
		},
	}
}

// Load reads the configuration file at path over the defaults and applies
// environment overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(c); errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// ApplyEnv overrides settings from DRAWSTORM_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"", "text", "logfmt", "json"}
	validSinks   = []string{"log", "prometheus", "trace"}
)

// Validate checks enumerated settings and shortcut specs.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, &ValidationError{Path: "log.level", Message: "unknown level", Value: c.Log.Level})
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, &ValidationError{Path: "log.format", Message: "unknown format", Value: c.Log.Format})
	}
	for _, s := range c.Tracking.Sinks {
		if !slices.Contains(validSinks, s) {
			errs = append(errs, &ValidationError{Path: "tracking.sinks", Message: "unknown sink", Value: s})
		}
	}
	if err := c.Keymap().Validate(); err != nil {
		errs = append(errs, &ValidationError{Path: "keys", Message: err.Error(), Value: c.Keys})
	}
	return errors.Join(errs...)
}

// Keymap returns the [keys] section as a keymap.
func (c *Config) Keymap() *keymap.Keymap {
	return keymap.FromMap("config", c.Keys).WithSource("config")
}
