package render

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// EscapeHTML escapes text for HTML element content and attribute values
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// HTMLTable renders rows as table body markup, each row tagged with its filtered index
func HTMLTable(rows []Row) string {
	if len(rows) == 0 {
		return `<tr><td colspan="6" class="no-data">` + EmptyText + `</td></tr>`
	}

	var b strings.Builder

	for _, r := range rows {
		fmt.Fprintf(&b, `<tr data-index="%d">`, r.Index)
		fmt.Fprintf(&b, `<td class="mono">%s</td>`, EscapeHTML(r.Timestamp))
		fmt.Fprintf(&b, `<td class="mono">%s</td>`, EscapeHTML(r.AgentID))
		fmt.Fprintf(&b, `<td>%s</td>`, EscapeHTML(r.Type))
		fmt.Fprintf(&b, `<td><span class="severity-badge %s">%s</span></td>`, EscapeHTML(r.Severity), EscapeHTML(r.Badge))
		fmt.Fprintf(&b, `<td class="mono">%s</td>`, EscapeHTML(r.User))
		fmt.Fprintf(&b, `<td class="message-cell">%s</td>`, EscapeHTML(r.Message))
		b.WriteString("</tr>\n")
	}

	return b.String()
}

var whitespace = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// Sanitize strips escape sequences and control characters so untrusted text stays on one terminal line
func Sanitize(s string) string {
	s = ansi.Strip(whitespace.Replace(s))

	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}

		return r
	}, s)
}
