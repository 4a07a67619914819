package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/dshills/drawstorm/internal/scene"
)

// System is the operating system clipboard. It holds text only.
type System struct{}

// NewSystem returns the operating system clipboard bridge.
func NewSystem() System {
	return System{}
}

func (System) Available() bool {
	return !clipboard.Unsupported
}

func (s System) SupportsWriteText() bool {
	return s.Available()
}

func (System) SupportsBlob() bool {
	return false
}

func (s System) CopyElements(elements []*scene.Element, _ scene.AppState, files scene.Files) error {
	payload, err := Encode(elements, files)
	if err != nil {
		return err
	}
	return s.WriteText(payload)
}

func (s System) WriteText(text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

func (System) WriteBlob(string, []byte) error {
	return ErrBlobUnsupported
}

func (s System) ReadText() (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}
