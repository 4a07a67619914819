package clipboard

import (
	"sync"

	"github.com/dshills/drawstorm/internal/scene"
)

// Memory is an in-process clipboard supporting text and blobs.
type Memory struct {
	mu       sync.Mutex
	text     string
	mimeType string
	blob     []byte
	writes   int

	// Fail, when set, is returned by every write.
	Fail error
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Available implements Bridge.
func (m *Memory) Available() bool { return true }

// SupportsWriteText implements Bridge.
func (m *Memory) SupportsWriteText() bool { return true }

// SupportsBlob implements Bridge.
func (m *Memory) SupportsBlob() bool { return true }

// CopyElements implements Bridge by writing the element payload as text.
func (m *Memory) CopyElements(elements []*scene.Element, _ scene.AppState, files scene.Files) error {
	payload, err := Encode(elements, files)
	if err != nil {
		return err
	}
	return m.WriteText(payload)
}

// WriteText implements Bridge. It replaces any stored blob.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.text, m.mimeType, m.blob = text, "", nil
	m.writes++
	return nil
}

// WriteBlob implements Bridge. It replaces any stored text.
func (m *Memory) WriteBlob(mimeType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.text, m.mimeType = "", mimeType
	m.blob = append([]byte(nil), data...)
	m.writes++
	return nil
}

// ReadText implements Bridge. It returns ErrEmpty when no text is stored.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return "", ErrEmpty
	}
	return m.text, nil
}

// Blob returns the last blob written and its type.
func (m *Memory) Blob() (string, []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mimeType, append([]byte(nil), m.blob...)
}

// Writes returns how many writes have succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
