//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"siemctl/internal/app/api"
	"siemctl/internal/app/auth"
	"siemctl/internal/app/colors"
	"siemctl/internal/app/errors"
	"siemctl/internal/app/export"
	"siemctl/internal/app/ui/wire"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute() (int, error)
}

// cli represents the command-line interface for the application
type cli struct {
	cfg      *config.Config
	opts     *Options
	auth     auth.Auth
	client   api.Client
	exporter export.Exporter
	ui       wire.UI

	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	password func() (string, error)

	log logger.Logger
}

// NewCLI creates a new cli instance bound to the process streams
func NewCLI(
	cfg *config.Config,
	opts *Options,
	a auth.Auth,
	client api.Client,
	exporter export.Exporter,
	ui wire.UI,
	log logger.Logger,
) CLI {
	c := &cli{
		cfg:      cfg,
		opts:     opts,
		auth:     a,
		client:   client,
		exporter: exporter,
		ui:       ui,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		errOut:   os.Stderr,
		log:      log.WithComponent("CLI"),
	}

	c.password = c.readPassword

	return c
}

// Execute runs the parsed command and returns the process exit code
func (c *cli) Execute() (int, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.dispatch(ctx); err != nil {
		c.log.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(c.errOut, "%s %s\n", colors.Error("Error:"), c.describe(err))

		return 1, err
	}

	return 0, nil
}

func (c *cli) dispatch(ctx context.Context) error {
	switch c.opts.Type {
	case CommandConsole:
		return c.handleConsole(ctx)
	case CommandLogin:
		return c.handleLogin(ctx)
	case CommandLogout:
		return c.handleLogout()
	case CommandEvents:
		return c.handleEvents(ctx)
	case CommandShow:
		return c.handleShow(ctx)
	case CommandExport:
		return c.handleExport(ctx)
	case CommandStats:
		return c.handleStats(ctx)
	case CommandConfig:
		return c.handleConfig()
	case CommandVersion:
		return c.handleVersion()
	case CommandHelp:
		return c.handleHelp()
	default:
		return errors.ErrUnknownCommand
	}
}

// describe turns an error into the line shown to the user
func (c *cli) describe(err error) string {
	switch {
	case errors.Is(err, errors.ErrNotAuthenticated):
		return fmt.Sprintf("not signed in, run '%s login' first", config.AppName)
	case errors.Is(err, errors.ErrExportFailed):
		return export.AlertMessage(err)
	default:
		return err.Error()
	}
}

// handleConsole runs the interactive console until the user quits
func (c *cli) handleConsole(ctx context.Context) error {
	p, err := c.ui(ctx)
	if err != nil {
		return err
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// handleLogin prompts for missing credentials and stores them once the backend accepts them
func (c *cli) handleLogin(ctx context.Context) error {
	username := strings.TrimSpace(c.opts.Username)
	if username == "" {
		fmt.Fprint(c.out, "Username: ")

		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read username: %w", err)
		}

		username = strings.TrimSpace(line)
	}

	fmt.Fprint(c.out, "Password: ")

	password, err := c.password()

	fmt.Fprintln(c.out)

	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if username == "" || password == "" {
		return errors.ErrInvalidCredentials
	}

	if !c.auth.Login(ctx, username, password) {
		return errors.ErrInvalidCredentials
	}

	fmt.Fprintf(c.out, "%s Signed in as %s\n", colors.Success(colors.StatusSuccess), colors.Primary(username))

	return nil
}

// readPassword reads without echo from a terminal, or a plain line from a pipe
func (c *cli) readPassword() (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // fd fits in int
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		return string(b), err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// handleLogout clears stored credentials
func (c *cli) handleLogout() error {
	if err := c.auth.Logout(); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s Signed out\n", colors.Success(colors.StatusSuccess))

	return nil
}

// handleExport downloads the export and prints where it went
func (c *cli) handleExport(ctx context.Context) error {
	path, err := c.exporter.Export(ctx, c.opts.Format, export.Options{Dir: c.opts.Dir, Gzip: c.opts.Gzip})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s Exported %s to %s\n", colors.Success(colors.StatusSuccess), c.opts.Format, colors.Primary(path))

	return nil
}

// handleConfig prints the effective configuration as yaml
func (c *cli) handleConfig() error {
	b, err := c.cfg.YAML()
	if err != nil {
		return err
	}

	_, err = c.out.Write(b)

	return err
}

// handleVersion displays version information
func (c *cli) handleVersion() error {
	c.log.Debug().Msg("Displaying version information")
	fmt.Fprintln(c.out, RenderTitle())

	return nil
}

// handleHelp displays help information
func (c *cli) handleHelp() error {
	c.log.Debug().Msg("Displaying help information")
	fmt.Fprintln(c.out, RenderTitle())
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, c.opts.Usage)

	return nil
}

// credentials returns the stored credentials or ErrNotAuthenticated
func (c *cli) credentials() (api.Credentials, error) {
	if !c.auth.RequireAuth() {
		return api.Credentials{}, errors.ErrNotAuthenticated
	}

	creds, ok := c.auth.Credentials()
	if !ok {
		return api.Credentials{}, errors.ErrNotAuthenticated
	}

	return *creds, nil
}
