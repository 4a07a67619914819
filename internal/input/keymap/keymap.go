package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/scene"
)

// probeState is the state key tests see when probing for conflicts.
var probeState = scene.DefaultAppState()

// Keymap holds shortcut overrides for actions.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Source indicates where this keymap was defined.
	// Examples: "config", "file:~/.config/drawstorm/keys.toml"
	Source string

	// Bindings are applied in order; a later binding for the same action
	// replaces an earlier one.
	Bindings []Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// FromMap builds a keymap from action name to shortcut pairs, as found in
// the [keys] configuration section. Bindings are ordered by action name.
func FromMap(name string, keys map[string]string) *Keymap {
	km := NewKeymap(name)
	names := make([]string, 0, len(keys))
	for n := range keys {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		km.Add(keys[n], action.Name(n))
	}
	return km
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add binds keys to the named action.
func (k *Keymap) Add(keys string, name action.Name) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, name))
	return k
}

// AddBinding adds a fully configured binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Merge returns a keymap holding k's bindings followed by other's, so
// other wins for actions bound by both.
func (k *Keymap) Merge(other *Keymap) *Keymap {
	merged := k.Clone()
	if other != nil {
		merged.Bindings = append(merged.Bindings, other.Bindings...)
	}
	return merged
}

// Clone creates a copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	return &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		Bindings: append([]Binding(nil), k.Bindings...),
	}
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	return len(k.Bindings)
}

// effective returns the last binding per action.
func (k *Keymap) effective() map[action.Name]Binding {
	out := make(map[action.Name]Binding, len(k.Bindings))
	for _, b := range k.Bindings {
		out[b.Action] = b
	}
	return out
}

// Validate checks that every binding names an action and parses.
func (k *Keymap) Validate() error {
	var errs []error
	for i, b := range k.Bindings {
		if b.Action == "" {
			errs = append(errs, fmt.Errorf("binding %d (%s): empty action", i, b.Keys))
			continue
		}
		if _, err := b.Chord(); err != nil {
			errs = append(errs, fmt.Errorf("binding %s: %w", b.Action, err))
		}
	}
	return errors.Join(errs...)
}

// Apply returns copies of actions with their shortcuts replaced by the
// keymap. Actions the keymap does not mention are returned unchanged.
// Bindings that fail to parse are skipped and reported in the error.
func (k *Keymap) Apply(actions []action.Action) ([]action.Action, error) {
	bindings := k.effective()
	var errs []error

	out := make([]action.Action, len(actions))
	for i, a := range actions {
		out[i] = a
		b, ok := bindings[a.Name]
		if !ok {
			continue
		}
		chord, err := b.Chord()
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %s: %w", a.Name, err))
			continue
		}
		if chord.IsZero() {
			out[i].KeyTest = nil
		} else {
			out[i].KeyTest = action.ChordTest(chord)
		}
		if b.Priority != 0 {
			out[i].KeyPriority = b.Priority
		}
	}
	return out, errors.Join(errs...)
}

// Conflict is a shortcut claimed by more than one action.
type Conflict struct {
	Keys    string
	Actions []action.Name
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %v", c.Keys, c.Actions)
}

// Conflicts reports shortcuts that the keymap binds to several actions.
func (k *Keymap) Conflicts() []Conflict {
	byChord := make(map[string][]action.Name)
	for name, b := range k.effective() {
		chord, err := b.Chord()
		if err != nil || chord.IsZero() {
			continue
		}
		byChord[chord.String()] = append(byChord[chord.String()], name)
	}
	return collect(byChord)
}

// ConflictsWith reports every keymap shortcut that more than one of the
// given actions accepts, counting the actions' own key tests. Pass the
// actions after Apply.
func (k *Keymap) ConflictsWith(actions []action.Action) []Conflict {
	byChord := make(map[string][]action.Name)
	for _, b := range k.effective() {
		chord, err := b.Chord()
		if err != nil || chord.IsZero() {
			continue
		}
		ev := chord.Event()
		for _, a := range actions {
			if a.KeyTest != nil && a.KeyTest(ev, probeState, nil) {
				byChord[chord.String()] = append(byChord[chord.String()], a.Name)
			}
		}
	}
	return collect(byChord)
}

func collect(byChord map[string][]action.Name) []Conflict {
	var out []Conflict
	for keys, names := range byChord {
		names = dedupe(names)
		if len(names) < 2 {
			continue
		}
		out = append(out, Conflict{Keys: keys, Actions: names})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

func dedupe(names []action.Name) []action.Name {
	slices.Sort(names)
	return slices.Compact(names)
}
