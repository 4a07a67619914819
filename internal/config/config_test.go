package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if !cfg.Dispatcher.RecoverFromPanic {
		t.Error("RecoverFromPanic should default to true")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "drawstorm.toml", `
[log]
level = "debug"

[device]
mobile = true

[host]
view_mode = true

[ui.canvas_actions]
copy = false

[tracking]
sinks = ["log", "prometheus"]

[keys]
gridMode = "Ctrl+G"
viewMode = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || !cfg.Device.Mobile {
		t.Errorf("log/device not decoded: %+v %+v", cfg.Log, cfg.Device)
	}
	if cfg.Host.ViewMode == nil || !*cfg.Host.ViewMode {
		t.Error("host.view_mode pin not decoded")
	}
	if cfg.Host.GridMode != nil {
		t.Error("host.grid_mode should stay unpinned")
	}
	if visible, ok := cfg.UI.CanvasActions["copy"]; !ok || visible {
		t.Errorf("canvas_actions = %v", cfg.UI.CanvasActions)
	}
	if len(cfg.Tracking.Sinks) != 2 {
		t.Errorf("sinks = %v", cfg.Tracking.Sinks)
	}
	if cfg.Keymap().Len() != 2 {
		t.Errorf("keymap bindings = %d, want 2", cfg.Keymap().Len())
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "drawstorm.yaml", `
log:
  format: json
dispatcher:
  metrics: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Format != "json" || !cfg.Dispatcher.Metrics {
		t.Errorf("yaml not decoded: %+v %+v", cfg.Log, cfg.Dispatcher)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yml", "")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load empty yaml: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file error = %v, want ErrFileNotFound", err)
	}

	ini := writeFile(t, dir, "drawstorm.ini", "level=debug")
	if _, err := Load(ini); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ini error = %v, want ErrUnknownFormat", err)
	}

	bad := writeFile(t, dir, "bad.toml", "[log\nlevel=")
	_, err := Load(bad)
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Path != bad {
		t.Errorf("bad toml error = %v, want ParseError for %s", err, bad)
	}

	unknown := writeFile(t, dir, "unknown.toml", "[log]\nvolume = 11\n")
	if _, err := Load(unknown); !errors.As(err, &perr) {
		t.Errorf("unknown field error = %v, want ParseError", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Tracking.Sinks = []string{"log", "carrier-pigeon"}
	cfg.Keys["gridMode"] = "Hyper+G"

	err := cfg.Validate()
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("Validate = %v, want ErrValidationFailed", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "log.level" {
		t.Errorf("first validation error = %+v", verr)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DRAWSTORM_LOG_LEVEL", "warn")
	t.Setenv("DRAWSTORM_MOBILE", "true")
	t.Setenv("DRAWSTORM_ZEN_MODE", "false")
	t.Setenv("DRAWSTORM_TRACKING_SINKS", "log,trace")
	t.Setenv("DRAWSTORM_DISPATCHER_METRICS", "true")

	path := writeFile(t, t.TempDir(), "drawstorm.toml", "[log]\nlevel = \"debug\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("env should override file: level = %q", cfg.Log.Level)
	}
	if !cfg.Device.Mobile {
		t.Error("DRAWSTORM_MOBILE ignored")
	}
	if cfg.Host.ZenMode == nil || *cfg.Host.ZenMode {
		t.Error("DRAWSTORM_ZEN_MODE should pin zen mode off")
	}
	if len(cfg.Tracking.Sinks) != 2 || cfg.Tracking.Sinks[1] != "trace" {
		t.Errorf("sinks = %v", cfg.Tracking.Sinks)
	}
	if !cfg.Dispatcher.Metrics {
		t.Error("DRAWSTORM_DISPATCHER_METRICS ignored")
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "drawstorm.toml", "[log]\nlevel = \"info\"\n")

	reloaded := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, dir, "other.toml", "ignored")
	writeFile(t, dir, "drawstorm.toml", "[log]\nlevel = \"debug\"\n")

	select {
	case cfg := <-reloaded:
		if cfg.Log.Level != "debug" {
			t.Errorf("reloaded level = %q, want debug", cfg.Log.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestNewWatcherRequiresHandler(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "x.toml"), nil); err == nil {
		t.Error("NewWatcher(nil handler) should fail")
	}
}
