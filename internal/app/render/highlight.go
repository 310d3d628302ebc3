package render

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TokenKind classifies a highlighted JSON token
type TokenKind string

// Token kinds, named after the CSS classes of the detail view
const (
	TokenKey     TokenKind = "json-key"
	TokenString  TokenKind = "json-string"
	TokenNumber  TokenKind = "json-number"
	TokenBoolean TokenKind = "json-boolean"
	TokenNull    TokenKind = "json-null"
)

var jsonToken = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)

var htmlText = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Painter decorates the pieces of a pretty-printed JSON document
type Painter interface {
	Text(s string) string
	Token(kind TokenKind, s string) string
}

// HTMLPainter wraps tokens in spans carrying their kind as class
type HTMLPainter struct{}

// Text escapes punctuation and whitespace between tokens
func (HTMLPainter) Text(s string) string {
	return htmlText.Replace(s)
}

// Token escapes the token and wraps it in a classed span
func (HTMLPainter) Token(kind TokenKind, s string) string {
	return `<span class="` + string(kind) + `">` + htmlText.Replace(s) + `</span>`
}

// TermPainter colours tokens for the terminal
type TermPainter struct {
	Styles map[TokenKind]lipgloss.Style
}

// NewTermPainter returns a painter with the default token palette
func NewTermPainter() TermPainter {
	return TermPainter{
		Styles: map[TokenKind]lipgloss.Style{
			TokenKey:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}),
			TokenString:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}),
			TokenNumber:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#fbbf24"}),
			TokenBoolean: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}),
			TokenNull:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}),
		},
	}
}

// Text returns punctuation unchanged; encoded JSON holds no raw control characters
func (p TermPainter) Text(s string) string {
	return s
}

// Token colours the token by kind
func (p TermPainter) Token(kind TokenKind, s string) string {
	style, ok := p.Styles[kind]
	if !ok {
		return s
	}

	return style.Render(s)
}

// Indent pretty-prints a value with two-space indentation, leaving <, > and & unescaped
func Indent(v any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// HighlightJSON pretty-prints v and paints every token
func HighlightJSON(v any, p Painter) (string, error) {
	doc, err := Indent(v)
	if err != nil {
		return "", err
	}

	return Highlight(doc, p), nil
}

// Highlight paints the tokens of an already formatted JSON document
func Highlight(doc string, p Painter) string {
	var b strings.Builder

	last := 0
	for _, loc := range jsonToken.FindAllStringIndex(doc, -1) {
		b.WriteString(p.Text(doc[last:loc[0]]))

		token := doc[loc[0]:loc[1]]
		b.WriteString(p.Token(classify(token), token))

		last = loc[1]
	}

	b.WriteString(p.Text(doc[last:]))

	return b.String()
}

func classify(token string) TokenKind {
	switch {
	case strings.HasPrefix(token, `"`):
		if strings.HasSuffix(token, ":") {
			return TokenKey
		}

		return TokenString
	case token == "true" || token == "false":
		return TokenBoolean
	case token == "null":
		return TokenNull
	default:
		return TokenNumber
	}
}
