package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"teamdesk/internal/tui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI interface",
		Long: `Launch the interactive Terminal User Interface (TUI) for teamdesk.

The TUI lists the configured servers and lets you add, edit and delete
them through a form dialog. Changes made to servers.yaml by other programs
show up while the TUI is running.

Usage:
  teamdesk tui    # Launch the TUI interface

Navigation:
  • Use arrow keys to select a server
  • Press a to add, e or Enter to edit, d to delete
  • Press q to quit
  • Press ? for help`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := tui.NewTUIApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create TUI application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("config", cfg.Path()).Msg("starting tui")
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("TUI application failed: %w", err)
	}
	logger.Info().Msg("tui stopped")
	return nil
}
