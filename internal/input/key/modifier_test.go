package key

import (
	"testing"
)

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModAlt, true},
		{ModCtrl | ModAlt, ModShift, false},
		{ModCtrl | ModAlt | ModShift | ModMeta, ModMeta, true},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModAlt)
	if !mod.HasCtrl() || !mod.HasAlt() {
		t.Error("With should accumulate modifiers")
	}

	mod = mod.Without(ModAlt)
	if mod.HasAlt() || !mod.HasCtrl() {
		t.Error("Without(ModAlt) should remove only Alt")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModAlt | ModShift, "Alt+Shift"},
		{ModCtrl | ModAlt | ModShift | ModMeta, "Ctrl+Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCtrlOrCmd(t *testing.T) {
	prev := Darwin
	defer func() { Darwin = prev }()

	Darwin = true
	if CtrlOrCmd() != ModMeta {
		t.Error("CtrlOrCmd on darwin should be Meta")
	}
	if ModifierFromName("CtrlOrCmd") != ModMeta {
		t.Error("ModifierFromName(CtrlOrCmd) on darwin should be Meta")
	}

	Darwin = false
	if CtrlOrCmd() != ModCtrl {
		t.Error("CtrlOrCmd elsewhere should be Ctrl")
	}
}

func TestModifierFromName(t *testing.T) {
	tests := map[string]Modifier{
		"ctrl":   ModCtrl,
		"Ctrl":   ModCtrl,
		"option": ModAlt,
		"SHIFT":  ModShift,
		"cmd":    ModMeta,
		"hyper":  ModNone,
	}
	for name, want := range tests {
		if got := ModifierFromName(name); got != want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", name, got, want)
		}
	}
}
