package scene

import (
	"maps"
	"time"
)

// Toast is a transient notification shown by the shell.
type Toast struct {
	Message  string        `json:"message"`
	Closable bool          `json:"closable,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// AppState is an immutable snapshot of the application's UI state.
type AppState struct {
	SelectedElementIDs  map[string]bool `json:"selectedElementIds"`
	GridSize            int             `json:"gridSize"` // 0 means the grid is off
	ViewModeEnabled     bool            `json:"viewModeEnabled"`
	ZenModeEnabled      bool            `json:"zenModeEnabled"`
	ExportWithDarkMode  bool            `json:"exportWithDarkMode"`
	ViewBackgroundColor string          `json:"viewBackgroundColor"`
	ErrorMessage        string          `json:"errorMessage,omitempty"`
	Toast               *Toast          `json:"toast,omitempty"`
}

// DefaultAppState returns the state of a fresh canvas.
func DefaultAppState() AppState {
	return AppState{
		SelectedElementIDs:  map[string]bool{},
		ViewBackgroundColor: "#ffffff",
	}
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	c := s
	c.SelectedElementIDs = maps.Clone(s.SelectedElementIDs)
	if c.SelectedElementIDs == nil {
		c.SelectedElementIDs = map[string]bool{}
	}
	if s.Toast != nil {
		t := *s.Toast
		c.Toast = &t
	}
	return c
}

// WithSelection returns a copy selecting exactly the given IDs.
func (s AppState) WithSelection(ids ...string) AppState {
	c := s.Clone()
	c.SelectedElementIDs = make(map[string]bool, len(ids))
	for _, id := range ids {
		c.SelectedElementIDs[id] = true
	}
	return c
}

// IsSelected reports whether the element ID is selected.
func (s AppState) IsSelected(id string) bool {
	return s.SelectedElementIDs[id]
}
