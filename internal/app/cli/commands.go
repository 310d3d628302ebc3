package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"siemctl/internal/app/errors"
	"siemctl/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandConsole CommandType = iota
	CommandLogin
	CommandLogout
	CommandEvents
	CommandShow
	CommandExport
	CommandStats
	CommandConfig
	CommandVersion
	CommandHelp
)

// Output formats of the events command
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputHTML  = "html"
)

// Options contains the parsed command-line arguments
type Options struct {
	Type CommandType

	Username string

	Page       int
	Search     string
	Regex      bool
	Severities []string
	Types      []string
	Agent      string
	Output     string

	Index int
	HTML  bool

	Format string
	Dir    string
	Gzip   bool

	Usage string
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type:   CommandConsole,
		Page:   1,
		Output: OutputTable,
		Format: config.FormatJSON,
	}

	root := buildRootCommand(result)
	root.AddCommand(
		buildConsoleCommand(result),
		buildLoginCommand(result),
		buildLogoutCommand(result),
		buildEventsCommand(result),
		buildShowCommand(result),
		buildExportCommand(result),
		buildStatsCommand(result),
		buildConfigCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	result.Output = strings.ToLower(result.Output)
	result.Format = strings.ToLower(result.Format)

	return result, nil
}

// IsInteractive reports whether the command takes over the terminal
func (o *Options) IsInteractive() bool {
	return o.Type == CommandConsole
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Terminal console for the SIEM event API",
		Long: `siemctl browses, filters and exports security events collected by the
SIEM backend. Without a command it opens the interactive console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandConsole

			if v, _ := cmd.Flags().GetBool("version"); v {
				result.Type = CommandVersion
			}
		},
	}

	cmd.Flags().BoolP("version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
		result.Usage = cmd.UsageString()
	})

	return cmd
}

// buildConsoleCommand creates the console subcommand
func buildConsoleCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "console",
		Aliases: []string{"c"},
		Short:   "Open the interactive event console",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandConsole
		},
	}
}

// buildLoginCommand creates the login subcommand
func buildLoginCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the backend and store them",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandLogin
		},
	}

	cmd.Flags().StringVarP(&result.Username, "username", "u", "", "Username (prompted when empty)")

	return cmd
}

// buildLogoutCommand creates the logout subcommand
func buildLogoutCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandLogout
		},
	}
}

func addFilterFlags(cmd *cobra.Command, result *Options) {
	cmd.Flags().IntVarP(&result.Page, "page", "p", 1, "Page number")
	cmd.Flags().StringVar(&result.Search, "search", "", "Substring of message or raw log")
	cmd.Flags().BoolVar(&result.Regex, "regex", false, "Treat --search as a regular expression")
	cmd.Flags().StringSliceVar(&result.Severities, "severity", nil, "Severities to keep (repeatable)")
	cmd.Flags().StringSliceVar(&result.Types, "type", nil, "Event types to keep (repeatable)")
	cmd.Flags().StringVar(&result.Agent, "agent", "", "Glob matched against agent_id")
}

// buildEventsCommand creates the events subcommand
func buildEventsCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"e"},
		Short:   "Print one page of events",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandEvents
		},
	}

	addFilterFlags(cmd, result)
	cmd.Flags().StringVarP(&result.Output, "output", "o", OutputTable, "Output format: table, json or html")

	return cmd
}

// buildShowCommand creates the show subcommand
func buildShowCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Print one event of a page as highlighted JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			result.Type = CommandShow
			result.Index = index

			return nil
		},
	}

	addFilterFlags(cmd, result)
	cmd.Flags().BoolVar(&result.HTML, "html", false, "Emit HTML spans instead of terminal colors")

	return cmd
}

// buildExportCommand creates the export subcommand
func buildExportCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download every event as a JSON or CSV file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandExport
		},
	}

	cmd.Flags().StringVarP(&result.Format, "format", "f", config.FormatJSON, "Export format: json or csv")
	cmd.Flags().StringVarP(&result.Dir, "dir", "d", "", "Target directory (default from config)")
	cmd.Flags().BoolVar(&result.Gzip, "gzip", false, "Compress the file with gzip")

	return cmd
}

// buildStatsCommand creates the stats subcommand
func buildStatsCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print event statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandStats
		},
	}
}

// buildConfigCommand creates the config subcommand
func buildConfigCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandConfig
		},
	}
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}
}

// parseIndex reads a 1-based event index
func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 1 {
		return 0, fmt.Errorf("%w: %q", errors.ErrInvalidIndex, arg)
	}

	return index, nil
}
