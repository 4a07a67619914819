package action

import (
	"fmt"

	"github.com/dshills/drawstorm/internal/scene"
)

// PanelProps are passed to a panel component when it is rendered.
type PanelProps struct {
	Elements []*scene.Element
	Layers   []*scene.Layer
	AppState scene.AppState
	AppProps Props
	Data     any

	// UpdateData performs the action with formState as its value.
	UpdateData func(formState any)
}

// Panel is a rendered piece of inline UI.
type Panel interface {
	// View returns the text to display.
	View() string

	// Activate reports user interaction carrying the given form state.
	Activate(formState any)
}

// PanelComponent renders a panel for the given props.
type PanelComponent func(props PanelProps) Panel

// Checkbox returns a panel component showing a labelled check box whose
// activation performs the action.
func Checkbox(label string, checked CheckedFunc) PanelComponent {
	return func(props PanelProps) Panel {
		return &checkboxPanel{label: label, checked: checked(props.AppState), update: props.UpdateData}
	}
}

type checkboxPanel struct {
	label   string
	checked bool
	update  func(any)
}

func (p *checkboxPanel) View() string {
	mark := " "
	if p.checked {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s", mark, p.label)
}

func (p *checkboxPanel) Activate(formState any) {
	if p.update != nil {
		p.update(formState)
	}
}
