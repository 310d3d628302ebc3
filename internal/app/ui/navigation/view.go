package navigation

// View represents the current screen of the UI
type View int

const (
	ViewLogin View = iota
	ViewConsole
)

// String returns the string representation of the view
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewConsole:
		return "console"
	default:
		return "unknown"
	}
}
