package clipboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/drawstorm/internal/scene"
)

func TestPayloadRoundTrip(t *testing.T) {
	img := scene.NewElement(scene.TypeImage)
	img.FileID = "f1"
	files := scene.Files{
		"f1": {ID: "f1", MimeType: "image/png", DataURL: "data:image/png;base64,AA=="},
		"f2": {ID: "f2", MimeType: "image/png"},
	}

	payload, err := Encode([]*scene.Element{img, scene.NewText("hello")}, files)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(payload, `{"type":"drawstorm/clipboard"`) {
		t.Errorf("payload = %s", payload)
	}

	elements, gotFiles, ok, err := Decode(payload)
	if err != nil || !ok {
		t.Fatalf("Decode = ok %v, err %v", ok, err)
	}
	if len(elements) != 2 || elements[1].Text != "hello" {
		t.Errorf("elements = %+v", elements)
	}
	if _, ok := gotFiles["f1"]; !ok || len(gotFiles) != 1 {
		t.Errorf("files = %v, want only f1", gotFiles)
	}
}

func TestDecodePlainText(t *testing.T) {
	for _, text := range []string{"", "hello", `{"type":"other"}`, "[1,2]"} {
		_, _, ok, err := Decode(text)
		if ok || err != nil {
			t.Errorf("Decode(%q) = ok %v, err %v; want plain text", text, ok, err)
		}
	}
}

func TestMemoryClipboard(t *testing.T) {
	m := NewMemory()
	if _, err := m.ReadText(); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty ReadText error = %v", err)
	}

	if err := m.WriteText("A\n\nB"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got, _ := m.ReadText(); got != "A\n\nB" {
		t.Errorf("ReadText = %q", got)
	}

	if err := m.WriteBlob("image/png", []byte{1, 2}); err != nil {
		t.Fatalf("WriteBlob: %v", err)
	}
	if mime, data := m.Blob(); mime != "image/png" || len(data) != 2 {
		t.Errorf("Blob = %q %v", mime, data)
	}
	if m.Writes() != 2 {
		t.Errorf("Writes = %d, want 2", m.Writes())
	}

	m.Fail = errors.New("denied")
	if err := m.WriteText("x"); err == nil || err.Error() != "denied" {
		t.Errorf("WriteText with Fail = %v", err)
	}
}

func TestMemoryCopyElements(t *testing.T) {
	m := NewMemory()
	if err := m.CopyElements([]*scene.Element{scene.NewText("x")}, scene.DefaultAppState(), nil); err != nil {
		t.Fatalf("CopyElements: %v", err)
	}
	text, _ := m.ReadText()
	if !IsPayload(text) {
		t.Errorf("clipboard does not hold a payload: %s", text)
	}
}

func TestSystemBlobUnsupported(t *testing.T) {
	s := NewSystem()
	if s.SupportsBlob() {
		t.Error("system clipboard should not claim blob support")
	}
	if err := s.WriteBlob("image/png", nil); !errors.Is(err, ErrBlobUnsupported) {
		t.Errorf("WriteBlob error = %v", err)
	}
}
