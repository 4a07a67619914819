package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
)

// ErrUnknownFormat indicates a keymap file with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown keymap format")

// Loader loads keymaps from files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a TOML, YAML or JSON file, chosen by
// extension.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Source == "" {
		km.Source = "file:" + path
	}
	return km, nil
}

// LoadReader decodes a keymap in the given format: "toml", "yaml", "yml"
// or "json".
func (l *Loader) LoadReader(r io.Reader, format string) (*Keymap, error) {
	var config keymapConfig
	var err error
	switch format {
	case "toml":
		err = toml.NewDecoder(r).Decode(&config)
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(&config)
	case "json":
		err = json.NewDecoder(r).Decode(&config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	km := &Keymap{
		Name:     config.Name,
		Source:   config.Source,
		Bindings: make([]Binding, 0, len(config.Bindings)),
	}
	for _, bc := range config.Bindings {
		km.Bindings = append(km.Bindings, Binding{
			Keys:        bc.Keys,
			Action:      action.Name(bc.Action),
			Priority:    bc.Priority,
			Description: bc.Description,
		})
	}
	return km, km.Validate()
}

// LoadAll loads every keymap file in the search paths, in path then
// file name order. Files that fail to load are returned as a joined
// error alongside the keymaps that loaded.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)
	var errs []error

	for _, dir := range l.searchPaths {
		var matches []string
		for _, ext := range []string{"*.toml", "*.yaml", "*.yml", "*.json"} {
			m, err := filepath.Glob(filepath.Join(dir, ext))
			if err != nil {
				continue
			}
			matches = append(matches, m...)
		}
		sort.Strings(matches)

		for _, path := range matches {
			km, err := l.LoadFile(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			keymaps = append(keymaps, km)
		}
	}

	return keymaps, errors.Join(errs...)
}

// keymapConfig is the file structure for keymaps.
type keymapConfig struct {
	Name     string          `json:"name" toml:"name" yaml:"name"`
	Source   string          `json:"source,omitempty" toml:"source" yaml:"source"`
	Bindings []bindingConfig `json:"bindings" toml:"bindings" yaml:"bindings"`
}

type bindingConfig struct {
	Keys        string `json:"keys" toml:"keys" yaml:"keys"`
	Action      string `json:"action" toml:"action" yaml:"action"`
	Priority    int    `json:"priority,omitempty" toml:"priority" yaml:"priority"`
	Description string `json:"description,omitempty" toml:"description" yaml:"description"`
}
