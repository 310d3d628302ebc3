package render

import (
	"fmt"
	"strings"

	"siemctl/internal/app/api"
)

// Placeholder texts shown instead of the table body
const (
	LoadingText     = "Загрузка..."
	LoadingMoreText = "Загрузка событий..."
	EmptyText       = "Нет событий для отображения"
	ErrorText       = "Ошибка загрузки данных"
	ExportErrorText = "Ошибка экспорта данных: "
)

// DefaultSeverity is used when an event carries no severity
const DefaultSeverity = "low"

const missing = "-"

// Row is the display form of one event
type Row struct {
	Index     int
	Timestamp string
	AgentID   string
	Type      string
	Severity  string
	Badge     string
	User      string
	Process   string
	Message   string
}

// NewRow converts the event at a filtered index into its display form
func NewRow(index int, e api.Event) Row {
	severity := orDefault(e.String("severity"), DefaultSeverity)

	message := e.String("message")
	if message == "" {
		message = e.String("raw_log")
	}

	return Row{
		Index:     index,
		Timestamp: FormatTimestamp(e.String("timestamp")),
		AgentID:   orDefault(e.String("agent_id"), missing),
		Type:      orDefault(e.String("event_type"), missing),
		Severity:  severity,
		Badge:     strings.ToUpper(severity),
		User:      orDefault(e.String("user"), missing),
		Process:   orDefault(e.String("process"), missing),
		Message:   orDefault(message, missing),
	}
}

// Rows converts events into rows, preserving order
func Rows(events []api.Event) []Row {
	rows := make([]Row, 0, len(events))
	for i, e := range events {
		rows = append(rows, NewRow(i, e))
	}

	return rows
}

// CountLabel renders the total event counter
func CountLabel(total int) string {
	return fmt.Sprintf("Всего: %d", total)
}

// PaginationLabel renders the range of the current page within the total
func PaginationLabel(page, pageSize, total int) string {
	if total <= 0 {
		return "Показано 0-0 из 0"
	}

	if page < 1 {
		page = 1
	}

	start := (page-1)*pageSize + 1
	end := min(page*pageSize, total)

	return fmt.Sprintf("Показано %d-%d из %d", start, end, total)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
