package wire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"

	"siemctl/internal/app/api"
	"siemctl/internal/app/auth"
	"siemctl/internal/app/export"
	"siemctl/internal/app/monitor"
	"siemctl/internal/app/telemetry"
	"siemctl/internal/app/ui"
	"siemctl/internal/app/ui/console"
	"siemctl/internal/app/ui/navigation"
	"siemctl/internal/app/watcher"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// UI creates a Bubble Tea program for the TUI
type UI func(ctx context.Context) (*tea.Program, error)

// Module aggregates all UI modules and provides the UI factory
var Module = fx.Options(
	ui.Module,
	fx.Provide(NewUI),
)

// UIParams contains dependencies for creating the UI factory
type UIParams struct {
	fx.In

	Config    *config.Config
	Auth      auth.Auth
	Client    api.Client
	Exporter  export.Exporter
	Telemetry telemetry.Telemetry
	Monitor   monitor.Monitor
	Watcher   watcher.Watcher
	Navigator navigation.Navigator
	Logger    logger.Logger
}

// NewUI creates a factory function for constructing Bubble Tea programs
func NewUI(params UIParams) UI {
	return func(ctx context.Context) (*tea.Program, error) {
		deps := console.Deps{
			Auth:      params.Auth,
			Client:    params.Client,
			Exporter:  params.Exporter,
			Telemetry: params.Telemetry,
			Monitor:   params.Monitor,
		}

		model := ui.NewModel(ctx, params.Config, params.Navigator, deps, params.Watcher, params.Logger)

		p := tea.NewProgram(
			model,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)

		params.Logger.Debug().Msg("TUI: Program created via factory")

		return p, nil
	}
}
