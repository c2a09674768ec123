package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// HelpSystem shows the key binding reference
type HelpSystem struct {
	app *TUIApp
}

// NewHelpSystem creates a new help system instance
func NewHelpSystem(app *TUIApp) *HelpSystem {
	return &HelpSystem{app: app}
}

// Content returns the help text for the current state of the app
func (h *HelpSystem) Content() string {
	return fmt.Sprintf(`[aqua::b]teamdesk Help[::-]

[yellow::b]Servers:[white::-]
  [lime]a[white]           Add a server
  [lime]e[white], [lime]Enter[white]    Edit the selected server
  [lime]d[white]           Delete the selected server (with confirmation)
  [lime]↑/↓[white]         Move the selection
  [lime]r[white]           Reload the server file

[yellow::b]Server dialog:[white::-]
  [lime]Tab[white]         Next field
  [lime]Enter[white]       Add or save
  [lime]Esc[white]         Cancel

[yellow::b]General:[white::-]
  [lime]?[white]           Toggle this help
  [lime]q[white], [lime]Ctrl+C[white]   Quit

Servers configured: [aqua]%d[white]
Server file: [aqua]%s[white]`,
		len(h.app.config.Servers), tview.Escape(h.app.config.Path()))
}

// ShowHelp displays the help modal
func (h *HelpSystem) ShowHelp() {
	modal := tview.NewModal().
		SetText(h.Content()).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) { h.closeHelpModal() })

	modal.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			h.closeHelpModal()
			return nil
		}
		switch event.Rune() {
		case '?', 'q', 'Q':
			h.closeHelpModal()
			return nil
		}
		return event
	})

	h.app.modalManager.ShowModal(modal)
}

func (h *HelpSystem) closeHelpModal() {
	h.app.modalManager.HideModal()
}
