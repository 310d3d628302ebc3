package app

import (
	"context"
	"os"

	"go.uber.org/fx"

	"siemctl/internal/app/cli"
	"siemctl/internal/app/telemetry"
)

// App represents the main application container
type App struct {
	cli  cli.CLI
	tel  telemetry.Telemetry
	done chan struct{}
	exit func(int)
}

// NewApp creates a new application instance with its dependencies
func NewApp(cli cli.CLI, tel telemetry.Telemetry) *App {
	return &App{
		cli:  cli,
		tel:  tel,
		done: make(chan struct{}),
		exit: os.Exit,
	}
}

// Run executes the application and exits with the command's code
func (a *App) Run() {
	exitCode := a.execute()
	a.tel.Flush()
	close(a.done)

	a.exit(exitCode)
}

// execute runs the CLI and returns exit code - extracted for testing
func (a *App) execute() int {
	exitCode, _ := a.cli.Execute()

	return exitCode
}

// Register registers the application's lifecycle hooks with fx
func Register(lifecycle fx.Lifecycle, app *App) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Run()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-app.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
