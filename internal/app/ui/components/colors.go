package components

import "github.com/charmbracelet/lipgloss"

// Color palette for the console with semantic naming
const (
	// Foreground colors - text and elements
	FgPrimary = lipgloss.Color("#7D56F4") // Purple - focus, titles
	FgMuted   = lipgloss.Color("7")       // Light gray - secondary text
	FgBorder  = lipgloss.Color("8")       // Gray - borders and help text

	// Background colors
	BgSelection = lipgloss.Color("235") // Dark gray - selected row
	BgAlert     = lipgloss.Color("52")  // Dark red - blocking alert

	// State colors
	FgSuccess = lipgloss.Color("10") // Green - saved export, checked box
	FgWarning = lipgloss.Color("11") // Yellow - ignored pattern
	FgError   = lipgloss.Color("9")  // Red - load and export errors
)

// SeparatorColor is the adaptive color for header and footer lines
var SeparatorColor = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}
