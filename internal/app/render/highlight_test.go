package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siemctl/internal/app/api"
)

func Test_Indent(t *testing.T) {
	doc, err := Indent(api.Event{"b": "x<y", "a": 1})

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": \"x<y\"\n}", doc)

	_, err = Indent(api.Event{"bad": func() {}})
	assert.Error(t, err)
}

func Test_HighlightJSON_HTML(t *testing.T) {
	out, err := HighlightJSON(api.Event{"a": -1.5, "b": "x<y", "c": true, "d": nil}, HTMLPainter{})

	require.NoError(t, err)

	expected := strings.Join([]string{
		`{`,
		`  <span class="json-key">"a":</span> <span class="json-number">-1.5</span>,`,
		`  <span class="json-key">"b":</span> <span class="json-string">"x&lt;y"</span>,`,
		`  <span class="json-key">"c":</span> <span class="json-boolean">true</span>,`,
		`  <span class="json-key">"d":</span> <span class="json-null">null</span>`,
		`}`,
	}, "\n")

	assert.Equal(t, expected, out)
}

func Test_Highlight_Classify(t *testing.T) {
	tests := []struct {
		token    string
		expected TokenKind
	}{
		{token: `"user":`, expected: TokenKey},
		{token: `"user" :`, expected: TokenKey},
		{token: `"root"`, expected: TokenString},
		{token: `42`, expected: TokenNumber},
		{token: `1e-3`, expected: TokenNumber},
		{token: `true`, expected: TokenBoolean},
		{token: `false`, expected: TokenBoolean},
		{token: `null`, expected: TokenNull},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.token))
		})
	}
}

func Test_Highlight_EscapedQuotes(t *testing.T) {
	out := Highlight(`{"msg": "say \"hi\" 7"}`, HTMLPainter{})

	assert.Equal(t, `{<span class="json-key">"msg":</span> <span class="json-string">"say \"hi\" 7"</span>}`, out)
}

type recordingPainter struct {
	kinds []TokenKind
}

func (p *recordingPainter) Text(s string) string { return s }

func (p *recordingPainter) Token(kind TokenKind, s string) string {
	p.kinds = append(p.kinds, kind)
	return s
}

func Test_Highlight_Nested(t *testing.T) {
	p := &recordingPainter{}

	out, err := HighlightJSON(map[string]any{"tags": []any{"a", 2.0}, "meta": map[string]any{"ok": false}}, p)

	require.NoError(t, err)
	assert.Contains(t, out, `"tags": [`)
	assert.Equal(t, []TokenKind{TokenKey, TokenKey, TokenBoolean, TokenKey, TokenString, TokenNumber}, p.kinds)
}

func Test_TermPainter(t *testing.T) {
	p := NewTermPainter()

	assert.Len(t, p.Styles, 5)
	assert.Equal(t, "{ }", p.Text("{ }"))

	plain := TermPainter{Styles: map[TokenKind]lipgloss.Style{}}
	assert.Equal(t, `"x"`, plain.Token(TokenString, `"x"`))

	out, err := HighlightJSON(api.Event{"severity": "high"}, p)
	require.NoError(t, err)
	assert.Contains(t, out, "severity")
	assert.Contains(t, out, "high")
}

func Test_SeverityStyle(t *testing.T) {
	for _, s := range []string{"critical", "high", "medium", "low", "info", "unknown"} {
		t.Run(s, func(t *testing.T) {
			row := NewRow(0, api.Event{"severity": s})
			assert.Contains(t, Badge(row), strings.ToUpper(s))
		})
	}
}
