package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"teamdesk/internal/color"
)

func newRemoveCommand() *cobra.Command {
	removeCmd := &cobra.Command{
		Use:   "remove <server-name>",
		Short: "Remove a server",
		Long: `Remove a server with optional confirmation prompt.

This command will:
  • Display the server to be removed
  • Ask for confirmation before deletion (unless --yes is used)
  • Keep the order of the remaining servers

Examples:
  teamdesk remove Team          # Interactive confirmation
  teamdesk remove Team --yes    # Non-interactive deletion`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoveCommand(cmd, args, cmd.OutOrStdout())
		},
	}
	removeCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt and remove server")
	return removeCmd
}

func runRemoveCommand(cmd *cobra.Command, args []string, output io.Writer) error {
	serverName := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	index, server, err := cfg.FindServer(serverName)
	if err != nil {
		return fmt.Errorf("❌ Server '%s' not found. Use 'teamdesk list' to see available servers", serverName)
	}

	skipConfirmation, _ := cmd.Flags().GetBool("yes")
	if !skipConfirmation {
		fmt.Fprintf(output, "%s\n", color.InfoMessage("Server to remove:"))
		fmt.Fprintf(output, "   Name: %s\n", server.Name)
		fmt.Fprintf(output, "   URL: %s\n", server.URL)
		fmt.Fprintf(output, "   Identity: %s\n\n", server.Identity)

		ok, err := newPrompter(cmd.InOrStdin(), output).confirm("Are you sure you want to remove this server?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(output, "%s\n", color.InfoMessage("Removal cancelled."))
			return nil
		}
	}

	if err := cfg.RemoveServer(index); err != nil {
		return fmt.Errorf("❌ Failed to remove server: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("❌ Failed to save configuration: %w", err)
	}

	logger.Info().Str("name", serverName).Int("index", index).Msg("server removed")

	fmt.Fprintf(output, "%s\n", color.SuccessMessage("Server '%s' removed successfully!", serverName))
	return nil
}
