package console

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"siemctl/internal/app/api"
	"siemctl/internal/app/events"
	"siemctl/internal/app/export"
	"siemctl/internal/app/monitor"
	"siemctl/internal/app/ui/components"
)

// LogoutMsg asks the shell to return to the login screen
type LogoutMsg struct{}

// eventsMsg carries a page response back to the request that asked for it
type eventsMsg struct {
	req  events.Request
	resp *api.EventsResponse
	err  error
}

// debounceMsg fires after the search debounce; only the latest seq is applied
type debounceMsg struct {
	seq int
}

// exportMsg reports a finished export
type exportMsg struct {
	format string
	path   string
	err    error
}

// statsMsg carries a sample of own resource usage
type statsMsg struct {
	stats monitor.Stats
	err   error
}

// tickMsg signals a UI tick for animations
type tickMsg time.Time

func fetchCmd(client api.Client, creds api.Credentials, req events.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Events(req.Ctx, creds, req.Page, req.Limit)
		return eventsMsg{req: req, resp: resp, err: err}
	}
}

func debounceCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func exportCmd(ctx context.Context, exporter export.Exporter, format string) tea.Cmd {
	return func() tea.Msg {
		path, err := exporter.Export(ctx, format, export.Options{})
		return exportMsg{format: format, path: path, err: err}
	}
}

func statsCmd(ctx context.Context, m monitor.Monitor, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		stats, err := m.Self(ctx)
		return statsMsg{stats: stats, err: err}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(components.UITickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func logoutCmd() tea.Msg {
	return LogoutMsg{}
}
