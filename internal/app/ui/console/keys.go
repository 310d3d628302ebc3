package console

import (
	"github.com/charmbracelet/bubbles/key"

	"siemctl/internal/app/ui/components"
)

// KeyMap defines the key bindings for the event console
type KeyMap struct {
	components.KeyMap
	Home       key.Binding
	End        key.Binding
	Search     key.Binding
	Agent      key.Binding
	Regex      key.Binding
	Severity   key.Binding
	Type       key.Binding
	Toggle     key.Binding
	Detail     key.Binding
	Close      key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	ExportJSON key.Binding
	ExportCSV  key.Binding
	Logout     key.Binding
	Help       key.Binding
}

// DefaultKeyMap returns the default console key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyMap: components.DefaultKeyMap(),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Agent: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "agent glob"),
		),
		Regex: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "regex"),
		),
		Severity: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "severity"),
		),
		Type: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export json"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export csv"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Regex, k.Severity, k.Type, k.Detail, k.ExportJSON, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Search, k.Agent, k.Regex, k.Severity, k.Type, k.Toggle},
		{k.Detail, k.Close, k.PrevPage, k.NextPage},
		{k.ExportJSON, k.ExportCSV, k.Logout, k.Quit, k.ForceQuit},
	}
}
