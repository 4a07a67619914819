// Package config loads drawstorm settings.
//
// Settings are read in three steps, each overriding the last:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← DRAWSTORM_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML, by extension
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load(path)
//	if err != nil {
//	    return err
//	}
//
// # Sections
//
//	[log]          level, format, file
//	[device]       mobile, touch_screen
//	[host]         grid_mode, view_mode, zen_mode (pins; omit to leave unpinned)
//	[ui]           canvas_actions = { copy = false }
//	[tracking]     sinks = ["log", "prometheus", "trace"]
//	[keys]         action = "shortcut"
//	[keymaps]      paths = ["~/.config/drawstorm/keymaps"]
//	[plugins]      enabled, paths
//	[dispatcher]   metrics, recover_from_panic
//
// # Live Reload
//
// A Watcher reloads the file when it changes and hands the result to a
// handler:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
//	    ...
//	})
//	go w.Run(ctx)
package config
