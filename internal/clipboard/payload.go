package clipboard

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/drawstorm/internal/scene"
)

// PayloadType tags clipboard text holding drawing data.
const PayloadType = "drawstorm/clipboard"

// Encode builds a clipboard payload for elements. Only files referenced
// by the elements are included.
func Encode(elements []*scene.Element, files scene.Files) (string, error) {
	if elements == nil {
		elements = []*scene.Element{}
	}
	raw, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("encode elements: %w", err)
	}

	payload, err := sjson.Set("", "type", PayloadType)
	if err != nil {
		return "", err
	}
	if payload, err = sjson.SetRaw(payload, "elements", string(raw)); err != nil {
		return "", err
	}

	if referenced := files.Referenced(elements); len(referenced) > 0 {
		rawFiles, err := json.Marshal(referenced)
		if err != nil {
			return "", fmt.Errorf("encode files: %w", err)
		}
		if payload, err = sjson.SetRaw(payload, "files", string(rawFiles)); err != nil {
			return "", err
		}
	}
	return payload, nil
}

// IsPayload reports whether text is a drawing payload.
func IsPayload(text string) bool {
	return gjson.Valid(text) && gjson.Get(text, "type").String() == PayloadType
}

// Decode parses a clipboard payload. It returns ok=false for text that
// is not a drawing payload.
func Decode(text string) (elements []*scene.Element, files scene.Files, ok bool, err error) {
	if !IsPayload(text) {
		return nil, nil, false, nil
	}

	res := gjson.GetMany(text, "elements", "files")
	if res[0].IsArray() {
		if err := json.Unmarshal([]byte(res[0].Raw), &elements); err != nil {
			return nil, nil, true, fmt.Errorf("decode elements: %w", err)
		}
	}
	if res[1].IsObject() {
		if err := json.Unmarshal([]byte(res[1].Raw), &files); err != nil {
			return nil, nil, true, fmt.Errorf("decode files: %w", err)
		}
	}
	return elements, files, true, nil
}
