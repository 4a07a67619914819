package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Info locates one discovered plugin.
type Info struct {
	Name string
	Path string // entry script
}

// Loader discovers plugin scripts in its search paths. A plugin is either
// a single name.lua file or a directory holding init.lua.
type Loader struct {
	paths []string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths sets the plugin search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// NewLoader creates a new plugin loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{paths: DefaultPluginPaths()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultPluginPaths returns the default plugin search paths.
func DefaultPluginPaths() []string {
	paths := make([]string, 0, 2)

	// User plugins: ~/.config/drawstorm/plugins/
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "drawstorm", "plugins"))
	}

	// Project plugins: .drawstorm/plugins/
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".drawstorm", "plugins"))
	}

	return paths
}

// Paths returns the configured search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// AddPath adds a search path.
func (l *Loader) AddPath(path string) {
	l.paths = append(l.paths, path)
}

// Discover finds all plugins in the search paths, sorted by name.
// Missing paths are skipped; the first path to provide a name wins.
func (l *Loader) Discover() ([]Info, error) {
	found := make(map[string]Info)

	for _, basePath := range l.paths {
		if err := discoverInPath(basePath, found); err != nil {
			return nil, err
		}
	}

	plugins := make([]Info, 0, len(found))
	for _, info := range found {
		plugins = append(plugins, info)
	}
	sort.Slice(plugins, func(i, j int) bool {
		return plugins[i].Name < plugins[j].Name
	})
	return plugins, nil
}

func discoverInPath(basePath string, found map[string]Info) error {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read plugin path %s: %w", basePath, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(basePath, name)

		if !entry.IsDir() {
			if filepath.Ext(name) != ".lua" {
				continue
			}
			name = strings.TrimSuffix(name, ".lua")
		} else {
			path = filepath.Join(path, "init.lua")
			if _, err := os.Stat(path); err != nil {
				continue
			}
		}

		if _, exists := found[name]; !exists {
			found[name] = Info{Name: name, Path: path}
		}
	}
	return nil
}
