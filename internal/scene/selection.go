package scene

// SelectedElements returns the selected elements in element order.
// With includeBoundText, text elements bound to a selected container are
// returned too, even when they are not selected themselves.
func SelectedElements(elements []*Element, state AppState, includeBoundText bool) []*Element {
	var out []*Element
	for _, e := range elements {
		if e == nil {
			continue
		}
		if state.IsSelected(e.ID) {
			out = append(out, e)
			continue
		}
		if includeBoundText && IsTextElement(e) && e.ContainerID != "" && state.IsSelected(e.ContainerID) {
			out = append(out, e)
		}
	}
	return out
}

// ByID indexes elements by ID.
func ByID(elements []*Element) map[string]*Element {
	m := make(map[string]*Element, len(elements))
	for _, e := range elements {
		if e != nil {
			m[e.ID] = e
		}
	}
	return m
}
