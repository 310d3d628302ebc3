package components

import "github.com/charmbracelet/lipgloss"

// Tip styles
var (
	tipKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	tipDescStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
)

func tipKey(k string) string  { return tipKeyStyle.Render(k) }
func tipDesc(d string) string { return tipDescStyle.Render(d) }

// Tips contains hints rotated in the console footer
var Tips = []string{
	tipDesc("Press ") + tipKey("ctrl+r") + tipDesc(" to search with a regular expression"),
	tipDesc("Filter agents with a glob like ") + tipKey("web-*"),
	tipDesc("Press ") + tipKey("enter") + tipDesc(" to inspect the raw event"),
	tipDesc("Export without the console using ") + tipKey("siemctl export --format csv"),
	tipDesc("Switch to page mode with ") + tipKey("SIEMCTL_EVENTS_MODE=paged"),
	tipDesc("Print one page as a table with ") + tipKey("siemctl events"),
	tipDesc("Press ") + tipKey("?") + tipDesc(" to show all key bindings"),
}

// Tip returns the tip for a tick count, starting at offset
func Tip(tick, offset int) string {
	if len(Tips) == 0 {
		return ""
	}

	return Tips[(offset+tick/TipRotationTicks)%len(Tips)]
}
