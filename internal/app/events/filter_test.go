package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"siemctl/internal/app/api"
	"siemctl/internal/app/errors"
)

func sampleEvents() []api.Event {
	return []api.Event{
		{"agent_id": "web-01", "event_type": "auth", "severity": "high", "message": "Failed password for root"},
		{"agent_id": "web-02", "event_type": "process", "severity": "low", "raw_log": "sshd[42]: Accepted publickey"},
		{"agent_id": "db-01", "event_type": "auth", "severity": "critical", "message": "sudo: session opened"},
		{"agent_id": "db-02", "event_type": "file", "message": "ERROR 1045 access denied"},
	}
}

func agents(events []api.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.String(FieldAgentID))
	}

	return out
}

func Test_Apply(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected []string
		err      error
	}{
		{
			name:     "Empty filter keeps everything",
			filter:   Filter{},
			expected: []string{"web-01", "web-02", "db-01", "db-02"},
		},
		{
			name:     "Substring is case-insensitive over message",
			filter:   Filter{Search: "FAILED"},
			expected: []string{"web-01"},
		},
		{
			name:     "Substring matches raw_log",
			filter:   Filter{Search: "publickey"},
			expected: []string{"web-02"},
		},
		{
			name:     "Substring without regex treats metacharacters literally",
			filter:   Filter{Search: "s.*d"},
			expected: []string{},
		},
		{
			name:     "Regex is case-insensitive",
			filter:   Filter{Search: "^(sudo|sshd)", Regex: true},
			expected: []string{"web-02", "db-01"},
		},
		{
			name:     "Regex with digits",
			filter:   Filter{Search: `\d{4}`, Regex: true},
			expected: []string{"db-02"},
		},
		{
			name:     "Invalid regex behaves as empty search",
			filter:   Filter{Search: "([", Regex: true},
			expected: []string{"web-01", "web-02", "db-01", "db-02"},
			err:      errors.ErrInvalidRegexPattern,
		},
		{
			name:     "Invalid regex still applies other dimensions",
			filter:   Filter{Search: "([", Regex: true, Types: []string{"auth"}},
			expected: []string{"web-01", "db-01"},
			err:      errors.ErrInvalidRegexPattern,
		},
		{
			name:     "Severity set",
			filter:   Filter{Severities: []string{"high", "critical"}},
			expected: []string{"web-01", "db-01"},
		},
		{
			name:     "Missing severity never matches a non-empty set",
			filter:   Filter{Severities: []string{"low"}},
			expected: []string{"web-02"},
		},
		{
			name:     "Type set",
			filter:   Filter{Types: []string{"file", "process"}},
			expected: []string{"web-02", "db-02"},
		},
		{
			name:     "Agent glob",
			filter:   Filter{Agent: "db-*"},
			expected: []string{"db-01", "db-02"},
		},
		{
			name:     "Invalid glob is ignored",
			filter:   Filter{Agent: "web-[", Types: []string{"process"}},
			expected: []string{"web-02"},
			err:      errors.ErrInvalidGlobPattern,
		},
		{
			name:     "All dimensions combine with AND",
			filter:   Filter{Search: "s", Severities: []string{"critical", "high"}, Types: []string{"auth"}, Agent: "db-*"},
			expected: []string{"db-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Apply(sampleEvents(), tt.filter)

			assert.Equal(t, tt.expected, agents(result))

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Apply_DoesNotMutateInput(t *testing.T) {
	input := sampleEvents()

	_, _ = Apply(input, Filter{Types: []string{"auth"}})

	assert.Len(t, input, 4)
	assert.Equal(t, "web-01", input[0].String(FieldAgentID))
}

func Test_Filter_Toggle(t *testing.T) {
	var f Filter

	assert.True(t, f.IsEmpty())

	f.ToggleSeverity("high")
	f.ToggleSeverity("low")
	assert.Equal(t, []string{"high", "low"}, f.Severities)
	assert.True(t, f.HasSeverity("low"))

	f.ToggleSeverity("high")
	assert.Equal(t, []string{"low"}, f.Severities)
	assert.False(t, f.HasSeverity("high"))

	f.ToggleType("auth")
	assert.True(t, f.HasType("auth"))
	assert.False(t, f.IsEmpty())

	f.ToggleType("auth")
	assert.Empty(t, f.Types)
}

func Test_Filter_ToggleDoesNotAlias(t *testing.T) {
	original := Filter{Types: make([]string, 1, 4)}
	original.Types[0] = "auth"

	copied := original
	copied.ToggleType("file")

	assert.Equal(t, []string{"auth"}, original.Types)
	assert.Equal(t, []string{"auth", "file"}, copied.Types)
}
