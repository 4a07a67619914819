package app

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/scene"
)

// pasteOffset shifts pasted elements so they don't cover their source.
const pasteOffset = 10

// PasteFromClipboard implements action.App. A drawstorm payload pastes its
// elements with fresh IDs and selects them; other text becomes a text
// element. Failures surface as the error message.
func (a *Application) PasteFromClipboard(event *action.ClipboardEvent) {
	state := a.State()

	var text string
	if event != nil {
		text = event.Text
	} else {
		if a.clipboard == nil || !a.clipboard.Available() {
			a.apply(action.Failed(state, sysclip.ErrUnavailable))
			return
		}
		t, err := a.clipboard.ReadText()
		if err != nil {
			a.logger.Warn("clipboard read failed", "err", err)
			a.apply(action.Failed(state, err))
			return
		}
		text = t
	}

	if strings.TrimSpace(text) == "" {
		return
	}

	pasted, files, ok, err := sysclip.Decode(text)
	if err != nil {
		a.apply(action.Failed(state, err))
		return
	}
	if !ok {
		t := scene.NewText(text)
		pasted = []*scene.Element{t}
	} else {
		pasted = reassignIDs(pasted)
	}

	ids := make([]string, 0, len(pasted))
	for _, e := range pasted {
		if !e.IsDeleted {
			ids = append(ids, e.ID)
		}
	}

	a.mu.Lock()
	if len(files) > 0 {
		merged := maps.Clone(a.files)
		if merged == nil {
			merged = scene.Files{}
		}
		maps.Copy(merged, files)
		a.files = merged
	}
	onChange := a.applyLocked(action.NoHistory().
		WithElements(append(slices.Clone(a.elements), pasted...)).
		WithState(a.state.WithSelection(ids...)).
		WithHistory(true))
	a.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// reassignIDs clones the pasted elements under fresh IDs, keeping text
// bound to its pasted container.
func reassignIDs(elements []*scene.Element) []*scene.Element {
	ids := make(map[string]string, len(elements))
	for _, e := range elements {
		if e != nil {
			ids[e.ID] = uuid.NewString()
		}
	}

	out := make([]*scene.Element, 0, len(elements))
	for _, e := range elements {
		if e == nil {
			continue
		}
		c := e.Clone()
		c.ID = ids[e.ID]
		c.X += pasteOffset
		c.Y += pasteOffset
		c.Version = 1
		if c.ContainerID != "" {
			if id, ok := ids[c.ContainerID]; ok {
				c.ContainerID = id
			} else {
				c.ContainerID = ""
			}
		}
		bound := c.BoundElements[:0]
		for _, b := range c.BoundElements {
			if id, ok := ids[b.ID]; ok {
				b.ID = id
				bound = append(bound, b)
			}
		}
		c.BoundElements = bound
		out = append(out, c)
	}
	return out
}
