package clipboard

import (
	"errors"

	"github.com/dshills/drawstorm/internal/scene"
)

// Clipboard errors.
var (
	// ErrUnavailable indicates no clipboard is reachable.
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrBlobUnsupported indicates the clipboard cannot hold binary data.
	ErrBlobUnsupported = errors.New("clipboard does not support images")

	// ErrEmpty indicates there is nothing to read.
	ErrEmpty = errors.New("clipboard is empty")
)

// Bridge is a clipboard the editor can read and write.
type Bridge interface {
	// Available reports whether the clipboard can be used at all.
	Available() bool

	// SupportsWriteText reports whether WriteText is likely to succeed.
	SupportsWriteText() bool

	// SupportsBlob reports whether WriteBlob is likely to succeed.
	SupportsBlob() bool

	// CopyElements writes elements and the files they reference.
	CopyElements(elements []*scene.Element, state scene.AppState, files scene.Files) error

	// WriteText replaces the clipboard with plain text.
	WriteText(text string) error

	// WriteBlob replaces the clipboard with binary data of the given type.
	WriteBlob(mimeType string, data []byte) error

	// ReadText returns the clipboard as text.
	ReadText() (string, error)
}
