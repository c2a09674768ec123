package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"teamdesk/internal/color"
	"teamdesk/internal/config"
)

const (
	columnPadding    = 2
	minIdentityWidth = 16
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured servers",
		Long: `List all configured servers in tab bar order.

The table shows:
  • Order of the server on the desktop app tab bar
  • Server name (for use with other commands)
  • Server URL
  • Path to the Ziti identity file

Long identity paths are shortened to fit the terminal.

Examples:
  teamdesk list                 # List all servers
  teamdesk list | grep example  # Filter servers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListCommand(cmd.OutOrStdout())
		},
	}
}

func runListCommand(output io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Servers) == 0 {
		fmt.Fprintln(output, color.InfoMessage("No servers configured."))
		fmt.Fprintln(output, color.InfoText("Use 'teamdesk add' to add a server."))
		return nil
	}

	ordered := make([]config.Server, 0, len(cfg.Servers))
	for _, index := range cfg.OrderedIndices() {
		ordered = append(ordered, cfg.Servers[index])
	}
	limit := identityWidth(output, ordered)

	w := tabwriter.NewWriter(output, 0, 0, columnPadding, ' ', 0)
	fmt.Fprintln(w, "ORDER\tNAME\tURL\tIDENTITY")
	fmt.Fprintln(w, "-----\t----\t---\t--------")
	for _, server := range ordered {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			server.Order,
			server.Name,
			server.URL,
			shortenPath(server.Identity, limit),
		)
	}
	w.Flush()

	fmt.Fprintf(output, "\n%s\n", color.InfoMessage("%d server(s) in %s", len(ordered), cfg.Path()))
	return nil
}

// identityWidth returns how many characters the identity column may use
// when output is a terminal, or 0 for no limit.
func identityWidth(output io.Writer, servers []config.Server) int {
	f, ok := output.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return identityLimit(width, servers)
}

func identityLimit(width int, servers []config.Server) int {
	orderWidth, nameWidth, urlWidth := len("ORDER"), len("NAME"), len("URL")
	for _, server := range servers {
		orderWidth = max(orderWidth, len(strconv.Itoa(server.Order)))
		nameWidth = max(nameWidth, utf8.RuneCountInString(server.Name))
		urlWidth = max(urlWidth, utf8.RuneCountInString(server.URL))
	}
	used := orderWidth + nameWidth + urlWidth + 3*columnPadding
	return max(width-used, minIdentityWidth)
}

// shortenPath keeps the end of path, where the file name is, within limit
func shortenPath(path string, limit int) string {
	runes := []rune(path)
	if limit <= 0 || len(runes) <= limit {
		return path
	}
	return "…" + string(runes[len(runes)-limit+1:])
}
