package colors

import (
	"github.com/fatih/color"
)

// Status symbols for command outcomes
const (
	StatusSuccess = "✓"
	StatusFailed  = "✗"
	StatusWarning = "!"
)

var (
	primary  = color.New(color.FgMagenta).SprintFunc()
	success  = color.New(color.FgGreen).SprintFunc()
	warning  = color.New(color.FgYellow).SprintFunc()
	failure  = color.New(color.FgRed, color.Bold).SprintFunc()
	muted    = color.New(color.FgHiBlack).SprintFunc()
	title    = color.New(color.FgMagenta, color.Bold).SprintFunc()
	subtitle = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Color functions for semantic styling
func Primary(text string) string {
	return primary(text)
}

func Success(text string) string {
	return success(text)
}

func Warning(text string) string {
	return warning(text)
}

func Error(text string) string {
	return failure(text)
}

func Muted(text string) string {
	return muted(text)
}

func Title(text string) string {
	return title(text)
}

func Subtitle(text string) string {
	return subtitle(text)
}

// Severity colors a severity value the way the console badges do
func Severity(severity string) string {
	switch severity {
	case "critical":
		return failure(severity)
	case "high":
		return color.New(color.FgRed).Sprint(severity)
	case "medium":
		return warning(severity)
	case "low":
		return primary(severity)
	case "info":
		return muted(severity)
	default:
		return severity
	}
}
