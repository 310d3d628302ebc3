package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"siemctl/internal/app"
	"siemctl/internal/app/cli"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// main is the entry point for the application
func main() {
	runApp()
}

// runApp contains the main application logic
func runApp() {
	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, closeOut := logOutput(cfg, opts)
	defer closeOut()

	application := createApp(cfg, opts, out)
	application.Run()
}

// loadConfig wraps config.Load for easier testing
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// logOutput picks where logs go: stderr for one-shot commands, logging.file or nowhere while the console owns the screen
func logOutput(cfg *config.Config, opts *cli.Options) (io.Writer, func()) {
	if !opts.IsInteractive() {
		return os.Stderr, func() {}
	}

	if cfg.Logging.File == "" {
		return io.Discard, func() {}
	}

	f, err := logger.OpenFile(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return io.Discard, func() {}
	}

	return f, func() { _ = f.Close() }
}

// createApp creates the FX application with the given config
func createApp(cfg *config.Config, opts *cli.Options, out io.Writer) *fx.App {
	return fx.New(
		fx.WithLogger(createFxLogger(cfg, out)),
		fx.Supply(cfg),
		fx.Supply(opts),
		fx.Provide(func() io.Writer { return out }),
		app.Module,
	)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config, out io.Writer) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel && out != io.Discard {
			return &fxevent.ConsoleLogger{W: out}
		}

		return fxevent.NopLogger
	}
}
