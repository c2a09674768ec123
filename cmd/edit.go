package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"teamdesk/internal/color"
	"teamdesk/internal/validation"
)

func newEditCommand() *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit <server-name>",
		Short: "Edit an existing server",
		Long: `Edit an existing server in place. Its position in the list is kept.

Pass the fields to change as flags, or omit all of them to be prompted for
each field with the current value as the default.

Examples:
  teamdesk edit Team                                 # Interactive
  teamdesk edit Team --url https://new.example.com   # Change only the URL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditCommand(cmd, args, cmd.OutOrStdout())
		},
	}
	addServerFlags(editCmd)
	return editCmd
}

func runEditCommand(cmd *cobra.Command, args []string, output io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	index, current, err := cfg.FindServer(args[0])
	if err != nil {
		return fmt.Errorf("❌ Server '%s' not found. Use 'teamdesk list' to see available servers", args[0])
	}

	updated, err := readServerFields(cmd, output, *current)
	if err != nil {
		return err
	}

	if result := validation.Check(updated.Name, updated.URL, updated.Identity); !result.Valid() {
		return fmt.Errorf("❌ %s", result.Message())
	}

	if err := cfg.UpdateServer(index, updated); err != nil {
		return fmt.Errorf("❌ Failed to update server: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("❌ Failed to save configuration: %w", err)
	}

	logger.Info().Str("name", updated.Name).Str("previous_name", current.Name).Int("index", index).Msg("server updated")

	fmt.Fprintf(output, "%s\n", color.SuccessMessage("Server '%s' updated successfully!", updated.Name))
	return nil
}
