package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
)

// Registry maps action names to actions.
// Registering a name that is already present replaces the earlier action.
type Registry struct {
	mu      sync.RWMutex
	actions map[action.Name]action.Action
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[action.Name]action.Action),
	}
}

// Register inserts or replaces an action by name.
func (r *Registry) Register(a action.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[a.Name] = a
}

// RegisterAll registers actions in order; later entries win on name collision.
func (r *Registry) RegisterAll(actions []action.Action) {
	for _, a := range actions {
		r.Register(a)
	}
}

// Get returns the action registered under name.
func (r *Registry) Get(name action.Name) (action.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// Has returns true if an action is registered under name.
func (r *Registry) Has(name action.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[name]
	return ok
}

// List returns all registered action names, sorted.
func (r *Registry) List() []action.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]action.Name, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// All returns every registered action, sorted by name.
func (r *Registry) All() []action.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]action.Action, 0, len(r.actions))
	for _, a := range r.actions {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i].Name < actions[j].Name })
	return actions
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}
