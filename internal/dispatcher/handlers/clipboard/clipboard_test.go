package clipboard

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	sysclip "github.com/dshills/drawstorm/internal/clipboard"
	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/dispatcher/handlers/edit"
	"github.com/dshills/drawstorm/internal/export"
	"github.com/dshills/drawstorm/internal/input/key"
	"github.com/dshills/drawstorm/internal/scene"
)

type fakeCanvas struct{}

func (fakeCanvas) Size() (int, int) { return 800, 600 }

type fakeApp struct {
	mobile bool
	canvas action.Canvas
	pastes int
}

func (a *fakeApp) Device() action.Device                    { return action.Device{IsMobile: a.mobile} }
func (a *fakeApp) Files() scene.Files                       { return nil }
func (a *fakeApp) Canvas() action.Canvas                    { return a.canvas }
func (a *fakeApp) Props() action.Props                      { return action.Props{} }
func (a *fakeApp) PasteFromClipboard(*action.ClipboardEvent) { a.pastes++ }

// fakeExporter records export calls and fails with err when set.
type fakeExporter struct {
	err      error
	kind     export.Kind
	elements []*scene.Element
}

func (x *fakeExporter) ExportCanvas(kind export.Kind, elements []*scene.Element, _ []*scene.Layer, _ scene.AppState, _ scene.Files, _ scene.AppState) error {
	x.kind = kind
	x.elements = elements
	return x.err
}

func newDeps() (Deps, *sysclip.Memory, *fakeExporter) {
	cb := sysclip.NewMemory()
	x := &fakeExporter{}
	return Deps{Clipboard: cb, Exporter: x, DeleteSelected: edit.DeleteSelected()}, cb, x
}

func wait(t *testing.T, o action.Outcome) action.Result {
	t.Helper()
	r, err := o.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	return r
}

func TestCopyTextJoinsWithBlankLine(t *testing.T) {
	d, cb, _ := newDeps()
	a, b := scene.NewText("A"), scene.NewText("B")
	box := scene.NewElement(scene.TypeRectangle)
	elements := []*scene.Element{a, box, b}
	state := scene.DefaultAppState().WithSelection(a.ID, box.ID, b.ID)

	r := wait(t, CopyText(d).Perform(elements, nil, state, nil, &fakeApp{}))
	if r.CommitToHistory {
		t.Error("copyText should not commit to history")
	}
	if !r.IsEmpty() {
		t.Errorf("copyText result = %s, want no state change", r)
	}
	if got, _ := cb.ReadText(); got != "A\n\nB" {
		t.Errorf("clipboard = %q, want %q", got, "A\n\nB")
	}
}

func TestCopyTextPredicate(t *testing.T) {
	d, _, _ := newDeps()
	text := scene.NewText("A")
	box := scene.NewElement(scene.TypeRectangle)
	elements := []*scene.Element{text, box}
	a := CopyText(d)

	if a.Enabled(elements, nil, scene.DefaultAppState().WithSelection(box.ID), action.Props{}, nil) {
		t.Error("copyText enabled without selected text")
	}
	if !a.Enabled(elements, nil, scene.DefaultAppState().WithSelection(text.ID), action.Props{}, nil) {
		t.Error("copyText disabled with selected text")
	}
}

func TestCopyTextWriteFailure(t *testing.T) {
	d, cb, _ := newDeps()
	cb.Fail = errors.New("clipboard locked")
	text := scene.NewText("A")

	r := wait(t, CopyText(d).Perform([]*scene.Element{text}, nil, scene.DefaultAppState().WithSelection(text.ID), nil, nil))
	if r.AppState == nil || r.AppState.ErrorMessage != "clipboard locked" {
		t.Errorf("result = %s, want error message", r)
	}
}

func TestCutIsCopyThenDelete(t *testing.T) {
	box := scene.NewElement(scene.TypeRectangle)
	label := scene.NewText("in box")
	label.ContainerID = box.ID
	elements := []*scene.Element{box, label, scene.NewElement(scene.TypeEllipse)}
	state := scene.DefaultAppState().WithSelection(box.ID)
	app := &fakeApp{mobile: true}

	d1, cb1, _ := newDeps()
	wait(t, Copy(d1).Perform(elements, nil, state, nil, app))
	want := wait(t, d1.DeleteSelected.Perform(elements, nil, state, nil, app))

	d2, cb2, _ := newDeps()
	got := wait(t, Cut(d2).Perform(elements, nil, state, nil, app))

	copied1, _ := cb1.ReadText()
	copied2, _ := cb2.ReadText()
	if copied1 != copied2 {
		t.Errorf("cut clipboard = %s, copy clipboard = %s", copied2, copied1)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cut result = %s, delete result = %s", got, want)
	}

	pasted, _, ok, err := sysclip.Decode(copied2)
	if err != nil || !ok || len(pasted) != 2 {
		t.Errorf("cut payload decoded to %d elements (ok %v, err %v), want box and bound text", len(pasted), ok, err)
	}
}

func TestCutKeyTest(t *testing.T) {
	d, _, _ := newDeps()
	a := Cut(d)
	state := scene.DefaultAppState()

	ctrlX := keyEvent('x', true)
	if !a.KeyTest(ctrlX, state, nil) {
		t.Error("cut should match CtrlOrCmd+x")
	}
	if a.KeyTest(keyEvent('x', false), state, nil) {
		t.Error("cut should not match bare x")
	}
}

func TestMobileOnlyPredicates(t *testing.T) {
	d, _, _ := newDeps()
	for _, a := range []action.Action{Copy(d), Paste(d), Cut(d)} {
		if a.Enabled(nil, nil, scene.DefaultAppState(), action.Props{}, &fakeApp{}) {
			t.Errorf("%s enabled on desktop", a.Name)
		}
		if !a.Enabled(nil, nil, scene.DefaultAppState(), action.Props{}, &fakeApp{mobile: true}) {
			t.Errorf("%s disabled on mobile", a.Name)
		}
	}
}

func TestPasteDelegatesToApp(t *testing.T) {
	d, _, _ := newDeps()
	app := &fakeApp{mobile: true}
	r := wait(t, Paste(d).Perform(nil, nil, scene.DefaultAppState(), nil, app))
	if app.pastes != 1 {
		t.Errorf("pastes = %d, want 1", app.pastes)
	}
	if r.CommitToHistory {
		t.Error("paste should not commit to history")
	}
}

func TestCopyAsPNGFailure(t *testing.T) {
	d, _, x := newDeps()
	x.err = errors.New("boom")
	elements := []*scene.Element{scene.NewElement(scene.TypeRectangle)}

	o := CopyAsPNG(d).Perform(elements, nil, scene.DefaultAppState(), nil, &fakeApp{canvas: fakeCanvas{}})
	if !o.IsDeferred() {
		t.Error("copyAsPng should be deferred")
	}
	r := wait(t, o)
	if r.AppState == nil || r.AppState.ErrorMessage != "boom" {
		t.Fatalf("result = %s, want errorMessage boom", r)
	}
	if r.CommitToHistory {
		t.Error("failed export must not commit to history")
	}
}

func TestExportFailureIsLogged(t *testing.T) {
	d, _, x := newDeps()
	var buf bytes.Buffer
	d.Logger = log.New(&buf)
	x.err = errors.New("renderer exploded")
	elements := []*scene.Element{scene.NewElement(scene.TypeRectangle)}

	r := wait(t, CopyAsSVG(d).Perform(elements, nil, scene.DefaultAppState(), nil, &fakeApp{canvas: fakeCanvas{}}))
	if r.AppState == nil || r.AppState.ErrorMessage != "renderer exploded" {
		t.Fatalf("result = %s, want errorMessage renderer exploded", r)
	}
	out := buf.String()
	for _, want := range []string{"export failed", "renderer exploded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestCopyAsPNGToast(t *testing.T) {
	d, _, x := newDeps()
	selected := scene.NewElement(scene.TypeRectangle)
	deleted := scene.NewElement(scene.TypeRectangle)
	deleted.IsDeleted = true
	elements := []*scene.Element{selected, scene.NewElement(scene.TypeEllipse), deleted}

	state := scene.DefaultAppState().WithSelection(selected.ID)
	state.ExportWithDarkMode = true
	r := wait(t, CopyAsPNG(d).Perform(elements, nil, state, nil, &fakeApp{canvas: fakeCanvas{}}))

	if x.kind != export.KindClipboardPNG || len(x.elements) != 1 {
		t.Errorf("exported %q with %d elements, want clipboard with the selection", x.kind, len(x.elements))
	}
	if r.AppState == nil || r.AppState.Toast == nil {
		t.Fatalf("result = %s, want toast", r)
	}
	msg := r.AppState.Toast.Message
	if !strings.Contains(msg, "selection") || !strings.Contains(msg, "Dark mode") {
		t.Errorf("toast = %q", msg)
	}

	wait(t, CopyAsPNG(d).Perform(elements, nil, scene.DefaultAppState(), nil, &fakeApp{canvas: fakeCanvas{}}))
	if len(x.elements) != 2 {
		t.Errorf("exported %d elements without selection, want the 2 live elements", len(x.elements))
	}
}

func TestCopyAsSVGWithoutCanvas(t *testing.T) {
	d, _, x := newDeps()
	elements := []*scene.Element{scene.NewElement(scene.TypeRectangle)}

	r := wait(t, CopyAsSVG(d).Perform(elements, nil, scene.DefaultAppState(), nil, &fakeApp{}))
	if !r.IsEmpty() || r.CommitToHistory {
		t.Errorf("result = %s, want empty", r)
	}
	if x.kind != "" {
		t.Error("exporter called without a canvas")
	}
}

func TestCopyAsSVGPredicate(t *testing.T) {
	d, _, _ := newDeps()
	a := CopyAsSVG(d)
	if a.Enabled(nil, nil, scene.DefaultAppState(), action.Props{}, nil) {
		t.Error("copyAsSvg enabled on empty scene")
	}
	if !a.Enabled([]*scene.Element{scene.NewElement(scene.TypeLine)}, nil, scene.DefaultAppState(), action.Props{}, nil) {
		t.Error("copyAsSvg disabled with elements")
	}
}

func keyEvent(r rune, cmd bool) key.Event {
	mods := key.ModNone
	if cmd {
		mods = key.CtrlOrCmd()
	}
	return key.NewRuneEvent(r, mods)
}
