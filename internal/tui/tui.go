package tui

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"teamdesk/internal/config"
)

// TUIApp is the full-screen server manager hosting the server dialogs
type TUIApp struct {
	app          *tview.Application
	layout       *tview.Flex
	serverList   *tview.Table
	statusBar    *tview.TextView
	modalManager *ModalManager
	help         *HelpSystem
	config       *config.Config
	log          zerolog.Logger

	// One dialog per mode; edit mode is fixed for a dialog's lifetime.
	addDialog  *ServerFormDialog
	editDialog *ServerFormDialog

	// editing is the server the edit dialog was opened on. Reloads may
	// move it, so saves look it up again instead of trusting the index.
	editing *config.Server

	// rows maps table rows to config indices. Row 0 is the header.
	rows []int

	running  bool
	mu       sync.Mutex
	stopChan chan struct{}
	watcher  *config.Watcher
}

// NewTUIApp creates the application around an already loaded configuration
func NewTUIApp(cfg *config.Config, logger zerolog.Logger) (*TUIApp, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	t := &TUIApp{
		app:      tview.NewApplication(),
		config:   cfg,
		log:      logger.With().Str("component", "tui").Logger(),
		stopChan: make(chan struct{}, 1),
	}
	t.help = NewHelpSystem(t)

	t.addDialog = NewServerFormDialog(ServerDialogOptions{
		OnSave:  t.saveNewServer,
		OnClose: func() { t.closeDialog(t.addDialog) },
		Logger:  logger,
	})
	t.editDialog = NewServerFormDialog(ServerDialogOptions{
		EditMode: true,
		OnSave:   t.saveEditedServer,
		OnClose:  func() { t.closeDialog(t.editDialog) },
		Logger:   logger,
	})

	t.setupLayout()
	t.setupKeyBindings()

	return t, nil
}

// setupLayout initializes the main UI layout
func (t *TUIApp) setupLayout() {
	t.statusBar = tview.NewTextView().SetDynamicColors(true)

	t.serverList = tview.NewTable()
	t.serverList.SetBorder(true).SetTitle(" Servers ")
	t.serverList.SetBorders(false)
	t.serverList.SetSelectable(true, false)
	t.serverList.SetFixed(1, 0)
	t.serverList.SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite))

	t.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.serverList, 0, 1, true).
		AddItem(t.statusBar, 1, 0, false)

	t.modalManager = NewModalManager(t.app, t.layout)
	t.app.SetRoot(t.layout, true)

	t.refreshServerList()
}

// setupKeyBindings configures global key bindings. While a modal is open
// only Ctrl+C is handled here; everything else belongs to the modal.
func (t *TUIApp) setupKeyBindings() {
	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			t.Stop()
			return nil
		}
		if t.modalManager.IsModalActive() {
			return event
		}
		return t.handleMainKey(event)
	})
}

func (t *TUIApp) handleMainKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEnter {
		t.openEditDialog()
		return nil
	}

	switch event.Rune() {
	case 'a', 'A':
		t.openAddDialog()
		return nil
	case 'e', 'E':
		t.openEditDialog()
		return nil
	case 'd', 'D':
		t.deleteSelectedServer()
		return nil
	case 'r', 'R':
		t.reloadConfig()
		return nil
	case '?':
		t.help.ShowHelp()
		return nil
	case 'q', 'Q':
		t.Stop()
		return nil
	}
	return event
}

// refreshServerList redraws the table from the configuration in order
func (t *TUIApp) refreshServerList() {
	selected := t.selectedIndex()

	t.serverList.Clear()
	for col, header := range []string{"Order", "Name", "URL", "Identity"} {
		t.serverList.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	t.rows = t.config.OrderedIndices()
	selectRow := 1
	for i, index := range t.rows {
		server := t.config.Servers[index]
		row := i + 1
		t.serverList.SetCell(row, 0, tview.NewTableCell(strconv.Itoa(server.Order)).SetAlign(tview.AlignRight))
		t.serverList.SetCell(row, 1, tview.NewTableCell(server.Name))
		t.serverList.SetCell(row, 2, tview.NewTableCell(server.URL))
		t.serverList.SetCell(row, 3, tview.NewTableCell(server.Identity).SetExpansion(1))
		if index == selected {
			selectRow = row
		}
	}
	if len(t.rows) > 0 {
		t.serverList.Select(selectRow, 0)
	}

	t.updateStatusBar()
}

func (t *TUIApp) updateStatusBar() {
	t.statusBar.SetText(fmt.Sprintf(
		"[aqua]%d[white] server(s) | [lime]a[white] add  [lime]e[white] edit  [lime]d[white] delete  [lime]r[white] reload  [lime]?[white] help  [lime]q[white] quit",
		len(t.config.Servers)))
}

// selectedIndex returns the config index of the selected row, or -1
func (t *TUIApp) selectedIndex() int {
	row, _ := t.serverList.GetSelection()
	if row < 1 || row > len(t.rows) {
		return -1
	}
	return t.rows[row-1]
}

// openAddDialog shows the add dialog for a server placed after the existing ones
func (t *TUIApp) openAddDialog() {
	t.addDialog.Show(true, nil, t.config.NextOrder())
	t.modalManager.ShowModal(t.addDialog.Primitive())
}

// openEditDialog shows the edit dialog seeded with the selected server
func (t *TUIApp) openEditDialog() {
	index := t.selectedIndex()
	if index < 0 {
		return
	}
	server, err := t.config.GetServer(index)
	if err != nil {
		t.showErrorModal(err.Error())
		return
	}

	t.editing = server
	t.editDialog.Show(true, RecordFromServer(*server, index), t.config.NextOrder())
	t.modalManager.ShowModal(t.editDialog.Primitive())
}

func (t *TUIApp) closeDialog(d *ServerFormDialog) {
	d.Show(false, nil, 0)
	if d == t.editDialog {
		t.editing = nil
	}
	t.modalManager.HideModal()
}

// locate returns the current index of server, failing if it was removed or
// changed since it was shown.
func (t *TUIApp) locate(server config.Server) (int, error) {
	index, current, err := t.config.FindServer(server.Name)
	if err != nil || *current != server {
		return -1, fmt.Errorf("server '%s' was changed or removed by another program; reload and try again", server.Name)
	}
	return index, nil
}

func (t *TUIApp) saveNewServer(record ServerRecord) {
	server := record.Server()
	index, err := t.config.AddServer(server)
	if err != nil {
		t.showErrorModal(fmt.Sprintf("Failed to add server: %s", err))
		return
	}
	if err := t.config.Save(); err != nil {
		// Roll back so the table matches the file.
		_ = t.config.RemoveServer(index)
		t.showErrorModal(fmt.Sprintf("Failed to save configuration: %s", err))
		return
	}

	t.log.Info().Str("name", server.Name).Int("index", index).Int("order", server.Order).Msg("server added")
	t.closeDialog(t.addDialog)
	t.refreshServerList()
}

func (t *TUIApp) saveEditedServer(record ServerRecord) {
	if t.editing == nil {
		t.showErrorModal("No server is being edited")
		return
	}
	previous := *t.editing

	index, err := t.locate(previous)
	if err != nil {
		t.showErrorModal(fmt.Sprintf("Failed to update server: %s", err))
		return
	}
	if record.Index != nil && *record.Index != index {
		t.log.Debug().Int("opened_at", *record.Index).Int("index", index).Msg("edited server moved")
	}
	if err := t.config.UpdateServer(index, record.Server()); err != nil {
		t.showErrorModal(fmt.Sprintf("Failed to update server: %s", err))
		return
	}
	if err := t.config.Save(); err != nil {
		_ = t.config.UpdateServer(index, previous)
		t.showErrorModal(fmt.Sprintf("Failed to save configuration: %s", err))
		return
	}

	t.log.Info().Str("name", record.Name).Int("index", index).Msg("server updated")
	t.closeDialog(t.editDialog)
	t.refreshServerList()
}

// deleteSelectedServer asks for confirmation before removing the selected server
func (t *TUIApp) deleteSelectedServer() {
	index := t.selectedIndex()
	if index < 0 {
		return
	}
	server := t.config.Servers[index]

	modal := newConfirmModal(
		fmt.Sprintf("Delete server '%s'?\n\n%s", server.Name, server.URL),
		"Delete",
		func() {
			t.modalManager.HideModal()
			t.deleteServer(server)
		},
		t.modalManager.HideModal,
	)
	t.modalManager.ShowModal(modal)
}

func (t *TUIApp) deleteServer(server config.Server) {
	index, err := t.locate(server)
	if err != nil {
		t.showErrorModal(fmt.Sprintf("Failed to remove server: %s", err))
		return
	}
	if err := t.config.RemoveServer(index); err != nil {
		t.showErrorModal(fmt.Sprintf("Failed to remove server: %s", err))
		return
	}
	if err := t.config.Save(); err != nil {
		t.showErrorModal(fmt.Sprintf("Failed to save configuration: %s", err))
		return
	}

	t.log.Info().Str("name", server.Name).Int("index", index).Msg("server removed")
	t.refreshServerList()
}

// reloadConfig rereads the server file from disk
func (t *TUIApp) reloadConfig() {
	cfg, err := config.LoadFromPath(t.config.Path())
	if err != nil {
		t.showErrorModal(fmt.Sprintf("Failed to reload configuration: %s", err))
		return
	}
	t.applyConfig(cfg)
}

// applyConfig swaps in a freshly loaded configuration. Open dialogs keep
// their working state.
func (t *TUIApp) applyConfig(cfg *config.Config) {
	t.config = cfg
	t.refreshServerList()
}

func (t *TUIApp) showErrorModal(message string) {
	t.log.Warn().Str("error", message).Msg("showing error")
	t.modalManager.ShowModal(newMessageModal(message, t.modalManager.HideModal))
}

// Run starts the TUI application and watches the server file until it stops
func (t *TUIApp) Run(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return fmt.Errorf("application is already running")
	}
	t.running = true
	t.mu.Unlock()

	if path := t.config.Path(); path != "" {
		w, err := config.NewWatcher(path, t.log, func(cfg *config.Config) {
			t.app.QueueUpdateDraw(func() { t.applyConfig(cfg) })
		})
		if err != nil {
			t.log.Warn().Err(err).Msg("config watcher disabled")
		} else {
			t.watcher = w
			defer w.Close()
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.stopChan:
		}
	}()

	err := t.app.Run()

	t.mu.Lock()
	t.running = false
	t.mu.Unlock()

	if err != nil {
		return fmt.Errorf("TUI application error: %w", err)
	}
	return ctx.Err()
}

// Stop stops the TUI application gracefully
func (t *TUIApp) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	t.app.Stop()

	select {
	case t.stopChan <- struct{}{}:
	default:
	}
}

// GetConfig returns the current configuration
func (t *TUIApp) GetConfig() *config.Config {
	return t.config
}
