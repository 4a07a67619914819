// Package handlers assembles the built-in actions.
//
// Actions are grouped by concern in subpackages:
//
//   - clipboard: copy, paste, cut, copyAsSvg, copyAsPng, copyText
//   - edit: deleteSelectedElements
//   - view: gridMode, viewMode, zenMode
package handlers

import (
	"github.com/charmbracelet/log"

	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/dispatcher/handlers/clipboard"
	"github.com/dshills/drawstorm/internal/dispatcher/handlers/edit"
	"github.com/dshills/drawstorm/internal/dispatcher/handlers/view"
	"github.com/dshills/drawstorm/internal/export"
)

// Deps are the collaborators shared by the built-in actions.
type Deps struct {
	Clipboard sysclip.Bridge
	Exporter  export.Exporter
	Logger    *log.Logger
}

// Builtin returns every built-in action in registration order.
func Builtin(d Deps) []action.Action {
	del := edit.DeleteSelected()

	actions := []action.Action{del}
	actions = append(actions, clipboard.Actions(clipboard.Deps{
		Clipboard:      d.Clipboard,
		Exporter:       d.Exporter,
		DeleteSelected: del,
		Logger:         d.Logger,
	})...)
	actions = append(actions, view.Actions()...)
	return actions
}
