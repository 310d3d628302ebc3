package components

import "github.com/charmbracelet/lipgloss"

// Common styles shared across the login and console views
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor)

	FooterStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor)

	FooterHelpStyle = lipgloss.NewStyle().
			PaddingTop(0)

	HelpStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	MutedStyle = lipgloss.NewStyle().
			Foreground(FgMuted)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(FgMuted)

	RowStyle = lipgloss.NewStyle()

	SelectedRowStyle = lipgloss.NewStyle().
				Background(BgSelection).
				Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(FgMuted).
				Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(FgError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(FgWarning)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(FgSuccess)

	FocusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(FgPrimary)

	// PanelStyle frames the login form
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FgPrimary).
			Padding(1, 2)

	// ModalStyle frames the event detail view
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FgPrimary).
			Padding(0, 1)

	// AlertStyle frames blocking error alerts
	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(FgError).
			Padding(1, 3)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(FgPrimary)

	SentinelStyle = lipgloss.NewStyle().
			Foreground(FgPrimary)
)
