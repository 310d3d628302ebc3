package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"siemctl/internal/config"
)

// RenderLine renders a horizontal line of the specified width with separator style
func RenderLine(width int) string {
	if width < 0 {
		width = 0
	}

	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// RenderHeader renders the header with format: ─── <title> ─────── <info> ───
func RenderHeader(width int, title, info string) string {
	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	maxTitleWidth := width - infoWidth - HeaderSeparatorMinWidth - HeaderFixedChars
	if titleWidth > maxTitleWidth && maxTitleWidth > 0 {
		title = Truncate(title, maxTitleWidth)
		titleWidth = lipgloss.Width(title)
	}

	separatorWidth := max(width-titleWidth-infoWidth-HeaderFixedChars, HeaderSeparatorMinWidth)

	return HeaderStyle.Render(RenderLine(3) + " " + title + " " + RenderLine(separatorWidth) + " " + info + " " + RenderLine(3))
}

// RenderFooter renders the footer: a line carrying stats and version, then the help text
func RenderFooter(width int, stats, helpText string) string {
	label := fmt.Sprintf("v%s", config.Version)
	if stats != "" {
		label = stats + " · " + label
	}

	separatorWidth := max(width-lipgloss.Width(label)-FooterFixedChars, FooterSeparatorMinWidth)
	versionLine := RenderLine(separatorWidth) + " " + MutedStyle.Render(label) + " " + RenderLine(3)

	help := FooterHelpStyle.Render(HelpStyle.Render(helpText))

	return FooterStyle.Render(lipgloss.JoinVertical(lipgloss.Left, versionLine, help))
}

// Truncate shortens s to maxWidth cells, ending with an ellipsis when cut; styling is preserved
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth == 1 {
		return "…"
	}

	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight pads s with spaces to width cells
func PadRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}

	return s + strings.Repeat(" ", gap)
}

// TruncateAndPad fits s into exactly width cells
func TruncateAndPad(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}

// Center places content in the middle of a width x height area
func Center(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
