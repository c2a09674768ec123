package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"teamdesk/internal/color"
	"teamdesk/internal/config"
	"teamdesk/internal/logging"
	"teamdesk/internal/settings"
)

var (
	// logger is set up by the root command before any subcommand runs
	logger    = zerolog.Nop()
	logCloser io.Closer
)

// CreateRootCommand builds a fresh command tree
func CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "teamdesk",
		Short: "Server manager for the Ziti-enabled team desktop app",
		Long: `teamdesk manages the servers shown as tabs in the Ziti-enabled team desktop app.

Each server has a display name, the URL of its Mattermost server and the
path to the Ziti identity.json file used to reach it. Servers are stored
in ~/.teamdesk/servers.yaml.

Examples:
  teamdesk add                  # Add a server interactively
  teamdesk list                 # List configured servers
  teamdesk tui                  # Manage servers in the terminal UI`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRuntime,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config-dir", "", "Directory holding servers.yaml (default ~/.teamdesk)")
	flags.String("log-file", "", "Log file (default <config-dir>/teamdesk.log)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newAddCommand(),
		newEditCommand(),
		newListCommand(),
		newRemoveCommand(),
		newTUICommand(),
	)

	setColorHelpFunc(rootCmd)
	applyColorFormattingRecursively(rootCmd)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	err := CreateRootCommand().Execute()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupRuntime resolves settings and prepares color output, the config
// location and the logger
func setupRuntime(cmd *cobra.Command, args []string) error {
	// Drop any directory forced by an earlier run so defaults resolve afresh.
	config.SetConfigDir("")

	s, err := settings.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("❌ Failed to load settings: %w", err)
	}

	if s.NoColor {
		color.SetColorOutput(false)
	}
	config.SetConfigDir(s.ConfigDir)

	closeLog()
	log, closer, err := logging.New(logging.Options{File: s.LogFile, Level: s.LogLevel})
	if err != nil {
		return fmt.Errorf("❌ Failed to set up logging: %w", err)
	}
	logger = log.With().Str("command", cmd.Name()).Logger()
	logCloser = closer

	logger.Debug().Str("config_dir", s.ConfigDir).Str("log_file", s.LogFile).Msg("settings resolved")
	return nil
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
	logger = zerolog.Nop()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("❌ Failed to load configuration: %w", err)
	}
	return cfg, nil
}
