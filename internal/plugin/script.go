package plugin

import (
	"fmt"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/drawstorm/internal/dispatcher/action"
	"github.com/dshills/drawstorm/internal/input/key"
	plua "github.com/dshills/drawstorm/internal/plugin/lua"
	"github.com/dshills/drawstorm/internal/scene"
)

// Script is one loaded plugin and the actions it declared.
type Script struct {
	name    string
	path    string
	state   *plua.State
	logger  *log.Logger
	actions []action.Action
}

func newScript(name, path string, logger *log.Logger, opts ...plua.StateOption) *Script {
	s := &Script{
		name:   name,
		path:   path,
		logger: logger.With("plugin", name),
	}
	opts = append(opts, plua.WithPrint(func(msg string) { s.logger.Info(msg) }))
	s.state = plua.NewState(opts...)
	_ = s.state.With(func(L *lua.LState) {
		L.SetGlobal("action", L.NewFunction(s.declare))
	})
	return s
}

// Name returns the plugin name.
func (s *Script) Name() string { return s.name }

// Path returns the entry script path, empty for inline scripts.
func (s *Script) Path() string { return s.path }

// Actions returns the declared actions in declaration order.
func (s *Script) Actions() []action.Action {
	out := make([]action.Action, len(s.actions))
	copy(out, s.actions)
	return out
}

// Close releases the script's Lua state.
func (s *Script) Close() error {
	return s.state.Close()
}

// declare implements action{...}.
func (s *Script) declare(L *lua.LState) int {
	a, err := s.buildAction(L.CheckTable(1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	s.actions = append(s.actions, a)
	return 0
}

func (s *Script) buildAction(t *lua.LTable) (action.Action, error) {
	name, _ := t.RawGetString("name").(lua.LString)
	if name == "" {
		return action.Action{}, fmt.Errorf("%w: name is required", ErrInvalidAction)
	}
	perform, ok := t.RawGetString("perform").(*lua.LFunction)
	if !ok {
		return action.Action{}, fmt.Errorf("%w: %s: perform must be a function", ErrInvalidAction, name)
	}

	a := action.Action{
		Name:     action.Name(name),
		Perform:  s.performer(perform),
		ViewMode: lua.LVAsBool(t.RawGetString("view_mode")),
	}

	if spec, ok := t.RawGetString("key").(lua.LString); ok && spec != "" {
		chord, err := key.ParseChord(string(spec))
		if err != nil {
			return action.Action{}, fmt.Errorf("%w: %s: %v", ErrInvalidAction, name, err)
		}
		a.KeyTest = action.ChordTest(chord)
	}
	if label, ok := t.RawGetString("label").(lua.LString); ok {
		a.ContextItemLabel = string(label)
	}
	if priority, ok := t.RawGetString("priority").(lua.LNumber); ok {
		a.KeyPriority = int(priority)
	}
	if category, ok := t.RawGetString("category").(lua.LString); ok && category != "" {
		a.TrackEvent = action.Track(string(category))
	}
	if enabled, ok := t.RawGetString("enabled").(*lua.LFunction); ok {
		a.Predicate = s.predicate(enabled)
	}
	return a, nil
}

func (s *Script) performer(fn *lua.LFunction) action.PerformFunc {
	return func(elements []*scene.Element, _ []*scene.Layer, state scene.AppState, _ any, _ action.App) action.Outcome {
		ret, err := s.call(fn, state, elements)
		if err != nil {
			s.logger.Error("scripted action failed", "err", err)
			return action.Immediate(action.Failed(state, err))
		}
		return action.Immediate(applyReturn(state, ret))
	}
}

func (s *Script) predicate(fn *lua.LFunction) action.PredicateFunc {
	return func(elements []*scene.Element, _ []*scene.Layer, state scene.AppState, _ action.Props, _ action.App) bool {
		ret, err := s.call(fn, state, elements)
		if err != nil {
			s.logger.Error("scripted predicate failed", "err", err)
			return false
		}
		return lua.LVAsBool(ret)
	}
}

func (s *Script) call(fn *lua.LFunction, state scene.AppState, elements []*scene.Element) (lua.LValue, error) {
	var arg *lua.LTable
	if err := s.state.With(func(L *lua.LState) {
		arg = stateTable(L, state, elements)
	}); err != nil {
		return lua.LNil, err
	}
	return s.state.Call(fn, arg)
}

// stateTable exposes the parts of the snapshot scripts may read.
func stateTable(L *lua.LState, state scene.AppState, elements []*scene.Element) *lua.LTable {
	selected := scene.SelectedElements(scene.NonDeleted(elements), state, false)

	t := L.NewTable()
	t.RawSetString("grid_size", lua.LNumber(state.GridSize))
	t.RawSetString("view_mode", lua.LBool(state.ViewModeEnabled))
	t.RawSetString("zen_mode", lua.LBool(state.ZenModeEnabled))
	t.RawSetString("selected", lua.LNumber(len(selected)))
	t.RawSetString("error_message", lua.LString(state.ErrorMessage))
	return t
}

// applyReturn turns a script's returned table into a Result. Any other
// return value changes nothing.
func applyReturn(state scene.AppState, ret lua.LValue) action.Result {
	t, ok := ret.(*lua.LTable)
	if !ok {
		return action.NoHistory()
	}

	next := state.Clone()
	changed := false
	if v, ok := t.RawGetString("grid_size").(lua.LNumber); ok {
		next.GridSize = int(v)
		changed = true
	}
	if v, ok := t.RawGetString("view_mode").(lua.LBool); ok {
		next.ViewModeEnabled = bool(v)
		changed = true
	}
	if v, ok := t.RawGetString("zen_mode").(lua.LBool); ok {
		next.ZenModeEnabled = bool(v)
		changed = true
	}
	if v, ok := t.RawGetString("error_message").(lua.LString); ok {
		next.ErrorMessage = string(v)
		changed = true
	}

	r := action.NoHistory()
	if changed {
		r = r.WithState(next)
	}
	if v, ok := t.RawGetString("commit").(lua.LBool); ok {
		r = r.WithHistory(bool(v))
	}
	return r
}
