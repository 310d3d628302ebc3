package render

import "github.com/charmbracelet/lipgloss"

var badgeBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var severityColors = map[string]lipgloss.AdaptiveColor{
	"critical": {Light: "#b91c1c", Dark: "#f87171"},
	"high":     {Light: "#ea580c", Dark: "#fb923c"},
	"medium":   {Light: "#b45309", Dark: "#fcd34d"},
	"low":      {Light: "#15803d", Dark: "#86efac"},
	"info":     {Light: "#0284c7", Dark: "#38bdf8"},
}

// SeverityStyle returns the badge style for a severity; unknown values get a muted badge
func SeverityStyle(severity string) lipgloss.Style {
	c, ok := severityColors[severity]
	if !ok {
		return badgeBase.Foreground(lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"})
	}

	return badgeBase.Foreground(c)
}

// Badge renders the coloured severity badge of a row
func Badge(r Row) string {
	return SeverityStyle(r.Severity).Render(Sanitize(r.Badge))
}
