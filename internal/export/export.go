// Package export renders drawings to SVG and PNG and places the result
// on the clipboard.
package export

import (
	"errors"
	"fmt"

	"github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/scene"
)

// Kind selects the export target.
type Kind string

// Export kinds.
const (
	KindClipboardSVG Kind = "clipboard-svg"
	KindClipboardPNG Kind = "clipboard"
)

// Export errors carry messages suitable for showing to the user.
var (
	ErrEmptyCanvas = errors.New("cannot export empty canvas")
	ErrUnknownKind = errors.New("unknown export type")
)

// Exporter exports elements to a target.
type Exporter interface {
	ExportCanvas(kind Kind, elements []*scene.Element, layers []*scene.Layer, state scene.AppState, files scene.Files, exportState scene.AppState) error
}

// CanvasExporter renders elements itself and writes to a clipboard.
type CanvasExporter struct {
	Clipboard clipboard.Bridge

	// Padding is the margin around the exported elements, in pixels.
	Padding int
}

// NewCanvasExporter creates an exporter writing to cb.
func NewCanvasExporter(cb clipboard.Bridge) *CanvasExporter {
	return &CanvasExporter{Clipboard: cb, Padding: 10}
}

// ExportCanvas renders the visible elements and copies the result.
// exportState controls the color scheme and the background.
func (x *CanvasExporter) ExportCanvas(kind Kind, elements []*scene.Element, layers []*scene.Layer, _ scene.AppState, _ scene.Files, exportState scene.AppState) error {
	visible := visibleElements(elements, layers)
	if len(visible) == 0 {
		return ErrEmptyCanvas
	}
	if x.Clipboard == nil || !x.Clipboard.Available() {
		return clipboard.ErrUnavailable
	}

	switch kind {
	case KindClipboardSVG:
		svg := RenderSVG(visible, exportState, x.Padding)
		if err := x.Clipboard.WriteText(svg); err != nil {
			return fmt.Errorf("couldn't copy to clipboard: %w", err)
		}
		return nil

	case KindClipboardPNG:
		if !x.Clipboard.SupportsBlob() {
			return clipboard.ErrBlobUnsupported
		}
		data, err := RenderPNG(visible, exportState, x.Padding)
		if err != nil {
			return err
		}
		if err := x.Clipboard.WriteBlob("image/png", data); err != nil {
			return fmt.Errorf("couldn't copy to clipboard: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// visibleElements drops soft-deleted elements and those on hidden layers.
func visibleElements(elements []*scene.Element, layers []*scene.Layer) []*scene.Element {
	hidden := make(map[string]bool)
	for _, l := range layers {
		if l != nil && !l.Visible {
			hidden[l.ID] = true
		}
	}
	var out []*scene.Element
	for _, e := range scene.NonDeleted(elements) {
		if !hidden[e.LayerID] {
			out = append(out, e)
		}
	}
	return out
}
