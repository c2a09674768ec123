package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"teamdesk/internal/color"
	"teamdesk/internal/config"
	"teamdesk/internal/validation"
)

func newAddCommand() *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new server",
		Long: `Add a new server with CLI flags or interactive prompts.

Provide the server details with flags, or omit all of them to be prompted
for each field.

CLI Flags:
  • --name: Name of the server displayed on the desktop app tab bar
  • --url: URL of the Mattermost server, starting with http:// or https://
  • --identity: Absolute path to the Ziti identity.json file for the server

The new server is placed after the existing ones.

Examples:
  # Interactive mode
  teamdesk add

  # Non-interactive
  teamdesk add --name Team --url https://chat.example.com --identity /home/me/team.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddCommand(cmd, cmd.OutOrStdout())
		},
	}
	addServerFlags(addCmd)
	return addCmd
}

func runAddCommand(cmd *cobra.Command, output io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	server, err := readServerFields(cmd, output, config.Server{Order: cfg.NextOrder()})
	if err != nil {
		return err
	}

	if result := validation.Check(server.Name, server.URL, server.Identity); !result.Valid() {
		return fmt.Errorf("❌ %s", result.Message())
	}

	index, err := cfg.AddServer(server)
	if err != nil {
		return fmt.Errorf("❌ Failed to add server: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("❌ Failed to save configuration: %w", err)
	}

	logger.Info().Str("name", server.Name).Int("index", index).Int("order", server.Order).Msg("server added")

	fmt.Fprintf(output, "%s\n", color.SuccessMessage("Server '%s' added successfully!", server.Name))
	fmt.Fprintf(output, "%s\n", color.InfoMessage("Use 'teamdesk list' to see all servers"))
	return nil
}
