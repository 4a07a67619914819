package handlers

import (
	"testing"

	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/export"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

func TestBuiltinNamesAreUnique(t *testing.T) {
	cb := sysclip.NewMemory()
	actions := Builtin(Deps{Clipboard: cb, Exporter: export.NewCanvasExporter(cb)})

	want := []action.Name{
		"deleteSelectedElements",
		"copy", "paste", "cut", "copyAsSvg", "copyAsPng", "copyText",
		"gridMode", "viewMode", "zenMode",
	}
	if len(actions) != len(want) {
		t.Fatalf("Builtin returned %d actions, want %d", len(actions), len(want))
	}
	seen := make(map[action.Name]bool)
	for i, a := range actions {
		if a.Name != want[i] {
			t.Errorf("actions[%d] = %q, want %q", i, a.Name, want[i])
		}
		if seen[a.Name] {
			t.Errorf("duplicate action %q", a.Name)
		}
		seen[a.Name] = true
		if a.Perform == nil {
			t.Errorf("%q has no performer", a.Name)
		}
	}
}

func TestBuiltinShortcutsDoNotOverlap(t *testing.T) {
	prev := key.Darwin
	defer func() { key.Darwin = prev }()
	key.Darwin = false

	cb := sysclip.NewMemory()
	actions := Builtin(Deps{Clipboard: cb, Exporter: export.NewCanvasExporter(cb)})
	state := scene.DefaultAppState()

	events := map[string]key.Event{
		"cut":       key.NewRuneEvent('x', key.ModCtrl),
		"copyAsPng": key.NewRuneEvent('C', key.ModAlt|key.ModShift),
		"gridMode":  key.NewRuneEvent('\'', key.ModCtrl),
		"viewMode":  key.NewRuneEvent('r', key.ModAlt),
		"zenMode":   key.NewRuneEvent('z', key.ModAlt),
		"delete":    key.NewSpecialEvent(key.KeyDelete, key.ModNone),
		"backspace": key.NewSpecialEvent(key.KeyBackspace, key.ModNone),
	}
	for name, ev := range events {
		var matched []action.Name
		for _, a := range actions {
			if a.KeyTest != nil && a.KeyTest(ev, state, nil) {
				matched = append(matched, a.Name)
			}
		}
		if len(matched) != 1 {
			t.Errorf("%s: matched %v, want exactly one action", name, matched)
		}
	}
}
