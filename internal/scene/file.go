package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// DocumentType is the type tag of a saved drawing.
const DocumentType = "drawstorm"

// DocumentVersion is the schema version written by Encode.
const DocumentVersion = 2

// ErrNotDrawing indicates the input is not a drawing document.
var ErrNotDrawing = errors.New("scene: not a drawing document")

// Document is the on-disk shape of a drawing.
type Document struct {
	Type     string     `json:"type"`
	Version  int        `json:"version"`
	Source   string     `json:"source,omitempty"`
	Elements []*Element `json:"elements"`
	Layers   []*Layer   `json:"layers,omitempty"`
	AppState AppState   `json:"appState"`
	Files    Files      `json:"files,omitempty"`
}

// Decode reads a document. Missing appState fields keep their defaults.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{AppState: DefaultAppState()}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("scene: decode document: %w", err)
	}
	if doc.Type != DocumentType {
		return nil, fmt.Errorf("%w: type %q", ErrNotDrawing, doc.Type)
	}
	if doc.AppState.SelectedElementIDs == nil {
		doc.AppState.SelectedElementIDs = map[string]bool{}
	}
	if doc.Files == nil {
		doc.Files = Files{}
	}
	if len(doc.Layers) == 0 {
		doc.Layers = []*Layer{{ID: "default", Name: "Default", Visible: true}}
	}
	return doc, nil
}

// Load reads a document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	if d.Type == "" {
		d.Type = DocumentType
	}
	if d.Version == 0 {
		d.Version = DocumentVersion
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
