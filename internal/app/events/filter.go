package events

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"siemctl/internal/app/api"
	"siemctl/internal/app/errors"
)

// Event fields interpreted by the console
const (
	FieldTimestamp = "timestamp"
	FieldAgentID   = "agent_id"
	FieldType      = "event_type"
	FieldSeverity  = "severity"
	FieldUser      = "user"
	FieldProcess   = "process"
	FieldMessage   = "message"
	FieldRawLog    = "raw_log"
)

// Severities lists the values offered by the severity picker, most severe first
var Severities = []string{"critical", "high", "medium", "low", "info"}

// Filter is the user's current filter selection; empty dimensions impose no restriction
type Filter struct {
	Search     string
	Regex      bool
	Severities []string
	Types      []string
	Agent      string
}

// IsEmpty reports whether no dimension restricts the result
func (f Filter) IsEmpty() bool {
	return f.Search == "" && len(f.Severities) == 0 && len(f.Types) == 0 && f.Agent == ""
}

// ToggleSeverity adds or removes a severity from the selection
func (f *Filter) ToggleSeverity(severity string) {
	f.Severities = toggle(f.Severities, severity)
}

// ToggleType adds or removes an event type from the selection
func (f *Filter) ToggleType(eventType string) {
	f.Types = toggle(f.Types, eventType)
}

// HasSeverity reports whether severity is selected
func (f Filter) HasSeverity(severity string) bool {
	return slices.Contains(f.Severities, severity)
}

// HasType reports whether eventType is selected
func (f Filter) HasType(eventType string) bool {
	return slices.Contains(f.Types, eventType)
}

// Apply returns the order-preserving subset of events matching every dimension.
// An invalid regex or glob disables its dimension; the returned error describes it.
func Apply(events []api.Event, f Filter) ([]api.Event, error) {
	m, err := compile(f)

	out := make([]api.Event, 0, len(events))

	for _, e := range events {
		if m.match(e) {
			out = append(out, e)
		}
	}

	return out, err
}

type matcher struct {
	search     string
	regex      *regexp.Regexp
	severities []string
	types      []string
	agent      glob.Glob
}

func compile(f Filter) (*matcher, error) {
	m := &matcher{
		severities: f.Severities,
		types:      f.Types,
	}

	var errs []error

	if f.Search != "" {
		if f.Regex {
			re, err := regexp.Compile("(?i)" + f.Search)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %w", errors.ErrInvalidRegexPattern, err))
			} else {
				m.regex = re
			}
		} else {
			m.search = strings.ToLower(f.Search)
		}
	}

	if f.Agent != "" {
		g, err := glob.Compile(f.Agent)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", errors.ErrInvalidGlobPattern, err))
		} else {
			m.agent = g
		}
	}

	if len(errs) > 0 {
		return m, errors.Join(errs...)
	}

	return m, nil
}

func (m *matcher) match(e api.Event) bool {
	if !m.matchText(e) {
		return false
	}

	if len(m.severities) > 0 && !slices.Contains(m.severities, e.String(FieldSeverity)) {
		return false
	}

	if len(m.types) > 0 && !slices.Contains(m.types, e.String(FieldType)) {
		return false
	}

	if m.agent != nil && !m.agent.Match(e.String(FieldAgentID)) {
		return false
	}

	return true
}

func (m *matcher) matchText(e api.Event) bool {
	message := e.String(FieldMessage)
	rawLog := e.String(FieldRawLog)

	switch {
	case m.regex != nil:
		return m.regex.MatchString(message) || m.regex.MatchString(rawLog)
	case m.search != "":
		return strings.Contains(strings.ToLower(message), m.search) ||
			strings.Contains(strings.ToLower(rawLog), m.search)
	default:
		return true
	}
}

func toggle(values []string, value string) []string {
	if i := slices.Index(values, value); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}

	return append(slices.Clone(values), value)
}
