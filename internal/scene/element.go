// Package scene holds the drawing data model consumed by actions:
// elements, layers, attachment files and the application state snapshot.
//
// Values handed to actions are snapshots. Actions never modify them in
// place; they build new values with Clone and return them in a result.
package scene

import (
	"slices"

	"github.com/google/uuid"
)

// ElementType identifies the kind of drawing element.
type ElementType string

// Element types.
const (
	TypeRectangle ElementType = "rectangle"
	TypeDiamond   ElementType = "diamond"
	TypeEllipse   ElementType = "ellipse"
	TypeArrow     ElementType = "arrow"
	TypeLine      ElementType = "line"
	TypeFreedraw  ElementType = "freedraw"
	TypeText      ElementType = "text"
	TypeImage     ElementType = "image"
)

// BoundElement references an element attached to a container.
type BoundElement struct {
	ID   string      `json:"id"`
	Type ElementType `json:"type"`
}

// Element is a single shape on the canvas.
type Element struct {
	ID              string         `json:"id"`
	Type            ElementType    `json:"type"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	StrokeColor     string         `json:"strokeColor,omitempty"`
	BackgroundColor string         `json:"backgroundColor,omitempty"`
	Text            string         `json:"text,omitempty"`
	FontSize        float64        `json:"fontSize,omitempty"`
	ContainerID     string         `json:"containerId,omitempty"`
	BoundElements   []BoundElement `json:"boundElements,omitempty"`
	FileID          string         `json:"fileId,omitempty"`
	LayerID         string         `json:"layerId,omitempty"`
	IsDeleted       bool           `json:"isDeleted"`
	Version         int            `json:"version"`
}

// NewElement creates an element of the given type with a fresh ID.
func NewElement(typ ElementType) *Element {
	return &Element{
		ID:          uuid.NewString(),
		Type:        typ,
		StrokeColor: "#1e1e1e",
		Version:     1,
	}
}

// NewText creates a text element with the given content.
func NewText(text string) *Element {
	e := NewElement(TypeText)
	e.Text = text
	e.FontSize = 20
	return e
}

// Clone returns an independent copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	c.BoundElements = slices.Clone(e.BoundElements)
	return &c
}

// Bump returns a copy with the version incremented.
func (e *Element) Bump() *Element {
	c := e.Clone()
	c.Version++
	return c
}

// IsTextElement reports whether the element carries text content.
func IsTextElement(e *Element) bool {
	return e != nil && e.Type == TypeText
}

// NonDeleted returns the elements that are not soft-deleted, in order.
func NonDeleted(elements []*Element) []*Element {
	out := make([]*Element, 0, len(elements))
	for _, e := range elements {
		if e != nil && !e.IsDeleted {
			out = append(out, e)
		}
	}
	return out
}

// Layer groups elements for visibility and locking.
type Layer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
}

// NewLayer creates a visible layer with a fresh ID.
func NewLayer(name string) *Layer {
	return &Layer{ID: uuid.NewString(), Name: name, Visible: true}
}

// BinaryFile is an attachment referenced by image elements.
type BinaryFile struct {
	ID       string `json:"id"`
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataURL"`
}

// Files is the attachment store, keyed by file ID.
type Files map[string]BinaryFile

// Referenced returns the subset of files used by the given elements.
func (f Files) Referenced(elements []*Element) Files {
	out := make(Files)
	for _, e := range elements {
		if e.FileID == "" {
			continue
		}
		if file, ok := f[e.FileID]; ok {
			out[e.FileID] = file
		}
	}
	return out
}
