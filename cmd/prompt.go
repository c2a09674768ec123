package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"teamdesk/internal/config"
)

// prompter reads answers line by line from the command's input
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the answer. An empty answer keeps current.
func (p *prompter) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		return "", fmt.Errorf("failed to read %s", strings.ToLower(label))
	}

	answer := strings.TrimSpace(p.scanner.Text())
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// confirm asks a y/n question
func (p *prompter) confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/n): ", question)
	if !p.scanner.Scan() {
		return false, fmt.Errorf("failed to read confirmation")
	}
	answer := strings.TrimSpace(strings.ToLower(p.scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

const (
	labelName     = "Server Display Name"
	labelURL      = "Server URL"
	labelIdentity = "Path to Ziti identity.json file"
)

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "Name of the server displayed on the desktop app tab bar")
	cmd.Flags().StringP("url", "u", "", "URL of the Mattermost server (http:// or https://)")
	cmd.Flags().StringP("identity", "i", "", "Absolute path to the Ziti identity.json file")
}

// readServerFields starts from current and applies either the field flags
// or, when none were passed, answers to interactive prompts.
func readServerFields(cmd *cobra.Command, output io.Writer, current config.Server) (config.Server, error) {
	server := current
	flags := cmd.Flags()

	if flags.Changed("name") || flags.Changed("url") || flags.Changed("identity") {
		if flags.Changed("name") {
			server.Name, _ = flags.GetString("name")
		}
		if flags.Changed("url") {
			server.URL, _ = flags.GetString("url")
		}
		if flags.Changed("identity") {
			server.Identity, _ = flags.GetString("identity")
		}
		return server, nil
	}

	p := newPrompter(cmd.InOrStdin(), output)
	var err error
	if server.Name, err = p.ask(labelName, current.Name); err != nil {
		return server, err
	}
	if server.URL, err = p.ask(labelURL, current.URL); err != nil {
		return server, err
	}
	if server.Identity, err = p.ask(labelIdentity, current.Identity); err != nil {
		return server, err
	}
	fmt.Fprintln(output)
	return server, nil
}
