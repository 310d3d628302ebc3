package api

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Response status values reported by the backend
const (
	StatusSuccess = "success"
	StatusFailed  = "error"
)

// Credentials holds the basic auth pair sent with every request
type Credentials struct {
	Username string
	Password string
}

// Event is a single SIEM record as returned by the backend
type Event map[string]any

// String returns the field as text: strings verbatim, missing or null as "", numbers without exponent, anything else via %v
func (e Event) String(key string) string {
	v, ok := e[key]
	if !ok || v == nil {
		return ""
	}

	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// EventsResponse is the body of GET /events
type EventsResponse struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
	Data       []Event `json:"data"`
}

// OK reports whether the response carries usable data
func (r *EventsResponse) OK() bool {
	return r != nil && r.Status == StatusSuccess && r.Data != nil
}

// TotalEvents returns total, falling back to count
func (r *EventsResponse) TotalEvents() int {
	if r.Total != 0 {
		return r.Total
	}

	return r.Count
}

// Pages returns totalPages, at least 1
func (r *EventsResponse) Pages() int {
	if r.TotalPages <= 0 {
		return 1
	}

	return r.TotalPages
}

// StatsResponse is the body of GET /stats
type StatsResponse struct {
	ActiveAgents  map[string]time.Time `json:"active_agents"`
	EventsByType  map[string]int       `json:"events_by_type"`
	SeverityDist  map[string]int       `json:"severity_distribution"`
	TopUsers      map[string]int       `json:"top_users"`
	TopProcesses  map[string]int       `json:"top_processes"`
	EventsPerHour map[int]int          `json:"events_per_hour"`
	LastLogins    []Event              `json:"last_logins"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// ExportResponse is a streamed export download; the caller closes Body
type ExportResponse struct {
	Body               io.ReadCloser
	ContentType        string
	ContentDisposition string
}
