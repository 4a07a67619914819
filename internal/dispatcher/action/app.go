package action

import "github.com/dshills/drawstorm/internal/scene"

// Device describes the client the app runs on.
type Device struct {
	IsMobile      bool
	IsTouchScreen bool
}

// Canvas is the render surface. Hosts without one return nil.
type Canvas interface {
	Size() (width, height int)
}

// UIOptions holds host-level UI configuration.
type UIOptions struct {
	// CanvasActions hides listed actions whose value is false.
	// Unlisted actions are visible.
	CanvasActions map[Name]bool
}

// Visible reports whether the named action is allowed by CanvasActions.
func (o UIOptions) Visible(name Name) bool {
	v, ok := o.CanvasActions[name]
	return !ok || v
}

// Props are the properties the embedding host passed to the app.
// A non-nil pin fixes the corresponding mode and disables its toggle.
type Props struct {
	UIOptions       UIOptions
	GridModeEnabled *bool
	ViewModeEnabled *bool
	ZenModeEnabled  *bool
}

// ClipboardEvent carries data from a host paste event.
type ClipboardEvent struct {
	Text string
}

// App is the handle actions use to reach the running application.
type App interface {
	Device() Device
	Files() scene.Files
	Canvas() Canvas
	Props() Props

	// PasteFromClipboard pastes event data, or reads the system
	// clipboard when event is nil.
	PasteFromClipboard(event *ClipboardEvent)
}
