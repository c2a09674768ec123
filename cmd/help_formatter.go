package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"teamdesk/internal/color"
)

// setColorHelpFunc applies color formatting to command help output
func setColorHelpFunc(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpText := ""
		if len(cmd.Long) > 0 {
			helpText += cmd.Long + "\n\n"
		}
		helpText += cmd.UsageString()

		fmt.Fprint(cmd.OutOrStdout(), color.FormatHelp(helpText))
	})
}

// applyColorFormattingRecursively applies color formatting to all subcommands of cmd
func applyColorFormattingRecursively(cmd *cobra.Command) {
	for _, subCmd := range cmd.Commands() {
		setColorHelpFunc(subCmd)
		applyColorFormattingRecursively(subCmd)
	}
}
