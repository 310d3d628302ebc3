package navigation

// Navigator provides screen switching between login and the console
type Navigator interface {
	// CurrentView returns the active view
	CurrentView() View
	// SwitchTo changes to the specified view and reports whether it changed
	SwitchTo(view View) bool
}

type navigator struct {
	current View
}

// NewNavigator creates a new navigator starting with the login view
func NewNavigator() Navigator {
	return &navigator{
		current: ViewLogin,
	}
}

func (n *navigator) CurrentView() View {
	return n.current
}

func (n *navigator) SwitchTo(view View) bool {
	if n.current == view {
		return false
	}

	n.current = view

	return true
}
