// Package clipboard provides the copy, cut, paste and export-to-clipboard
// actions.
package clipboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/export"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

// Action names for clipboard operations.
const (
	ActionCopy      action.Name = "copy"
	ActionPaste     action.Name = "paste"
	ActionCut       action.Name = "cut" // CtrlOrCmd+x
	ActionCopyAsSVG action.Name = "copyAsSvg"
	ActionCopyAsPNG action.Name = "copyAsPng" // Alt+Shift+C
	ActionCopyText  action.Name = "copyText"
)

// Deps are the collaborators the clipboard actions need.
type Deps struct {
	Clipboard      sysclip.Bridge
	Exporter       export.Exporter
	DeleteSelected action.Action

	// Logger receives export failures. Nil uses log.Default().
	Logger *log.Logger
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

// Actions returns every clipboard action.
func Actions(d Deps) []action.Action {
	return []action.Action{
		Copy(d),
		Paste(d),
		Cut(d),
		CopyAsSVG(d),
		CopyAsPNG(d),
		CopyText(d),
	}
}

// mobileClipboard enables copy, cut and paste on mobile devices only.
// Desktop hosts handle those through their own clipboard events.
func (d Deps) mobileClipboard(_ []*scene.Element, _ []*scene.Layer, _ scene.AppState, _ action.Props, app action.App) bool {
	return app != nil && app.Device().IsMobile && d.Clipboard != nil && d.Clipboard.Available()
}

func files(app action.App) scene.Files {
	if app == nil {
		return nil
	}
	return app.Files()
}

// Copy copies the selection, bound text included.
func Copy(d Deps) action.Action {
	return action.Action{
		Name:             ActionCopy,
		TrackEvent:       action.Track("element"),
		ContextItemLabel: "labels.copy",
		Predicate:        d.mobileClipboard,
		Perform: func(elements []*scene.Element, _ []*scene.Layer, state scene.AppState, _ any, app action.App) action.Outcome {
			selected := scene.SelectedElements(elements, state, true)
			if err := d.Clipboard.CopyElements(selected, state, files(app)); err != nil {
				return action.Immediate(action.Failed(state, err))
			}
			return action.Immediate(action.NoHistory())
		},
	}
}

// Paste asks the app to paste from the system clipboard.
func Paste(d Deps) action.Action {
	return action.Action{
		Name:             ActionPaste,
		TrackEvent:       action.Track("element"),
		ContextItemLabel: "labels.paste",
		Predicate:        d.mobileClipboard,
		Perform: func(_ []*scene.Element, _ []*scene.Layer, _ scene.AppState, _ any, app action.App) action.Outcome {
			if app != nil {
				app.PasteFromClipboard(nil)
			}
			return action.Immediate(action.NoHistory())
		},
	}
}

// Cut copies the selection and then deletes it. The result is the
// deletion's result.
func Cut(d Deps) action.Action {
	copyAction := Copy(d)
	return action.Action{
		Name:             ActionCut,
		TrackEvent:       action.Track("element"),
		ContextItemLabel: "labels.cut",
		Predicate:        d.mobileClipboard,
		Perform: func(elements []*scene.Element, layers []*scene.Layer, state scene.AppState, value any, app action.App) action.Outcome {
			copyAction.Perform(elements, layers, state, value, app)
			if d.DeleteSelected.Perform == nil {
				return action.Immediate(action.NoHistory())
			}
			return d.DeleteSelected.Perform(elements, layers, state, nil, app)
		},
		KeyTest: func(e key.Event, _ scene.AppState, _ []*scene.Element) bool {
			return e.CtrlOrCmd() && e.Rune == 'x'
		},
	}
}

// CopyAsSVG exports the selection, or the whole canvas when nothing is
// selected, to the clipboard as SVG text.
func CopyAsSVG(d Deps) action.Action {
	return action.Action{
		Name:             ActionCopyAsSVG,
		TrackEvent:       action.Track("element"),
		ContextItemLabel: "labels.copyAsSvg",
		Perform:          d.exportPerformer(export.KindClipboardSVG),
		Predicate: func(elements []*scene.Element, _ []*scene.Layer, _ scene.AppState, _ action.Props, _ action.App) bool {
			return d.Clipboard != nil && d.Clipboard.SupportsWriteText() && len(elements) > 0
		},
	}
}

// CopyAsPNG exports like CopyAsSVG but as a PNG image, and shows a toast
// describing what was copied.
func CopyAsPNG(d Deps) action.Action {
	return action.Action{
		Name:             ActionCopyAsPNG,
		TrackEvent:       action.Track("element"),
		ContextItemLabel: "labels.copyAsPng",
		Perform:          d.exportPerformer(export.KindClipboardPNG),
		Predicate: func(elements []*scene.Element, _ []*scene.Layer, _ scene.AppState, _ action.Props, _ action.App) bool {
			return d.Clipboard != nil && d.Clipboard.SupportsBlob() && len(elements) > 0
		},
		KeyTest: func(e key.Event, _ scene.AppState, _ []*scene.Element) bool {
			return e.Code == key.CodeC && e.Alt() && e.Shift()
		},
	}
}

func (d Deps) exportPerformer(kind export.Kind) action.PerformFunc {
	return func(elements []*scene.Element, layers []*scene.Layer, state scene.AppState, _ any, app action.App) action.Outcome {
		return action.Defer(func() action.Result {
			if app == nil || app.Canvas() == nil {
				return action.NoHistory()
			}

			live := scene.NonDeleted(elements)
			selected := scene.SelectedElements(live, state, true)
			target := selected
			if len(target) == 0 {
				target = live
			}

			if err := d.Exporter.ExportCanvas(kind, target, layers, state, app.Files(), state); err != nil {
				d.logger().Error("export failed", "kind", kind, "err", err)
				return action.Failed(state, err)
			}
			if kind != export.KindClipboardPNG {
				return action.NoHistory()
			}

			next := state.Clone()
			next.Toast = &scene.Toast{Message: pngToast(len(selected) > 0, state.ExportWithDarkMode)}
			return action.NoHistory().WithState(next)
		})
	}
}

func pngToast(selection, dark bool) string {
	what := "canvas"
	if selection {
		what = "selection"
	}
	scheme := "Light mode"
	if dark {
		scheme = "Dark mode"
	}
	return fmt.Sprintf("Copied %s to clipboard as PNG\n(%s)", what, scheme)
}

// CopyText copies the text of the selected text elements, separated by
// blank lines.
func CopyText(d Deps) action.Action {
	return action.Action{
		Name:             ActionCopyText,
		TrackEvent:       action.Track("element"),
		ContextItemLabel: "labels.copyText",
		Perform: func(elements []*scene.Element, _ []*scene.Layer, state scene.AppState, _ any, _ action.App) action.Outcome {
			var texts []string
			for _, e := range scene.SelectedElements(scene.NonDeleted(elements), state, true) {
				if scene.IsTextElement(e) {
					texts = append(texts, e.Text)
				}
			}
			if err := d.Clipboard.WriteText(strings.Join(texts, "\n\n")); err != nil {
				return action.Immediate(action.Failed(state, err))
			}
			return action.Immediate(action.NoHistory())
		},
		Predicate: func(elements []*scene.Element, _ []*scene.Layer, state scene.AppState, _ action.Props, _ action.App) bool {
			if d.Clipboard == nil || !d.Clipboard.SupportsWriteText() {
				return false
			}
			for _, e := range scene.SelectedElements(elements, state, true) {
				if scene.IsTextElement(e) {
					return true
				}
			}
			return false
		},
	}
}
