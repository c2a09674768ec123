package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"teamdesk/internal/config"
)

// newTestApp builds a TUIApp over a config file in a temp dir
func newTestApp(t *testing.T, servers ...config.Server) (*TUIApp, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "servers.yaml")
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	for _, s := range servers {
		if _, err := cfg.AddServer(s); err != nil {
			t.Fatalf("AddServer failed: %v", err)
		}
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	app, err := NewTUIApp(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTUIApp failed: %v", err)
	}
	return app, path
}

func loadServers(t *testing.T, path string) []config.Server {
	t.Helper()
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	return cfg.Servers
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewTUIAppRequiresConfig(t *testing.T) {
	if _, err := NewTUIApp(nil, zerolog.Nop()); err == nil {
		t.Error("expected error without configuration")
	}
}

func TestServerListOrdering(t *testing.T) {
	app, _ := newTestApp(t,
		config.Server{Name: "second", URL: "https://b.example.com", Identity: "/b", Order: 1},
		config.Server{Name: "first", URL: "https://a.example.com", Identity: "/a", Order: 0},
	)

	if got := app.serverList.GetRowCount(); got != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", got)
	}
	if got := app.serverList.GetCell(1, 1).Text; got != "first" {
		t.Errorf("expected first row to be 'first', got %q", got)
	}
	if got := app.serverList.GetCell(2, 1).Text; got != "second" {
		t.Errorf("expected second row to be 'second', got %q", got)
	}
	if got := app.selectedIndex(); got != 1 {
		t.Errorf("expected selection to map to config index 1, got %d", got)
	}
	if !strings.Contains(app.statusBar.GetText(true), "2 server(s)") {
		t.Errorf("unexpected status bar %q", app.statusBar.GetText(true))
	}
}

func TestAddServerThroughDialog(t *testing.T) {
	app, path := newTestApp(t,
		config.Server{Name: "existing", URL: "https://e.example.com", Identity: "/e", Order: 4},
	)

	app.handleMainKey(runeKey('a'))
	if !app.addDialog.Visible() {
		t.Fatal("expected add dialog to be shown")
	}
	if app.modalManager.GetCurrentModal() != app.addDialog.Primitive() {
		t.Fatal("expected add dialog on top of the modal stack")
	}
	if got := app.addDialog.State().Order; got != 5 {
		t.Errorf("expected new server order 5, got %d", got)
	}

	app.addDialog.EditField(FieldName, "Team")
	app.addDialog.EditField(FieldURL, "https://example.com")
	app.addDialog.EditField(FieldIdentity, "/home/me/identity.json")
	app.addDialog.AttemptSave()

	if app.addDialog.Visible() {
		t.Error("expected add dialog to be hidden after save")
	}
	if app.modalManager.IsModalActive() {
		t.Error("expected no modal after save")
	}

	servers := loadServers(t, path)
	if len(servers) != 2 {
		t.Fatalf("expected 2 servers on disk, got %d", len(servers))
	}
	expected := config.Server{Name: "Team", URL: "https://example.com", Identity: "/home/me/identity.json", Order: 5}
	if servers[1] != expected {
		t.Errorf("expected %+v, got %+v", expected, servers[1])
	}
	if app.serverList.GetRowCount() != 3 {
		t.Errorf("expected table to refresh, got %d rows", app.serverList.GetRowCount())
	}
}

func TestAddServerInvalidKeepsDialogOpen(t *testing.T) {
	app, path := newTestApp(t)

	app.openAddDialog()
	app.addDialog.AttemptSave()

	if !app.addDialog.Visible() {
		t.Error("expected dialog to stay open")
	}
	if app.addDialog.ErrorMessage() != "Name and URL and Identity are required." {
		t.Errorf("unexpected error %q", app.addDialog.ErrorMessage())
	}
	if len(loadServers(t, path)) != 0 {
		t.Error("expected nothing saved")
	}
}

func TestAddDuplicateShowsErrorModal(t *testing.T) {
	app, path := newTestApp(t,
		config.Server{Name: "Team", URL: "https://e.example.com", Identity: "/e"},
	)

	app.openAddDialog()
	app.addDialog.EditField(FieldName, "Team")
	app.addDialog.EditField(FieldURL, "https://example.com")
	app.addDialog.EditField(FieldIdentity, "/p")
	app.addDialog.AttemptSave()

	if app.modalManager.Depth() != 2 {
		t.Fatalf("expected error modal over dialog, got depth %d", app.modalManager.Depth())
	}
	if _, ok := app.modalManager.GetCurrentModal().(*tview.Modal); !ok {
		t.Error("expected error modal on top")
	}
	if !app.addDialog.Visible() {
		t.Error("expected dialog to stay open")
	}
	if len(app.config.Servers) != 1 || len(loadServers(t, path)) != 1 {
		t.Error("expected duplicate to be rejected")
	}

	app.modalManager.HideModal()
	if app.modalManager.GetCurrentModal() != app.addDialog.Primitive() {
		t.Error("expected dismissing the error to return to the dialog")
	}
}

func TestEditServerThroughDialog(t *testing.T) {
	app, path := newTestApp(t,
		config.Server{Name: "alpha", URL: "https://a.example.com", Identity: "/a", Order: 0},
		config.Server{Name: "beta", URL: "https://b.example.com", Identity: "/b", Order: 1},
	)

	app.serverList.Select(2, 0)
	app.handleMainKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if !app.editDialog.Visible() {
		t.Fatal("expected edit dialog to be shown")
	}
	state := app.editDialog.State()
	if state.Name != "beta" || state.Index == nil || *state.Index != 1 || state.Order != 1 {
		t.Fatalf("unexpected seed state %+v", state)
	}

	app.editDialog.EditField(FieldURL, "https://beta.example.com")
	app.editDialog.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if app.editDialog.Visible() {
		t.Error("expected edit dialog hidden after save")
	}
	servers := loadServers(t, path)
	expected := config.Server{Name: "beta", URL: "https://beta.example.com", Identity: "/b", Order: 1}
	if servers[1] != expected {
		t.Errorf("expected %+v, got %+v", expected, servers[1])
	}
}

func TestEditCancelDiscardsChanges(t *testing.T) {
	app, path := newTestApp(t,
		config.Server{Name: "alpha", URL: "https://a.example.com", Identity: "/a"},
	)

	app.openEditDialog()
	app.editDialog.EditField(FieldName, "changed")
	app.editDialog.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	if app.editDialog.Visible() || app.modalManager.IsModalActive() {
		t.Error("expected dialog closed")
	}
	if loadServers(t, path)[0].Name != "alpha" {
		t.Error("expected no change on disk")
	}

	app.openEditDialog()
	if got := app.editDialog.State().Name; got != "alpha" {
		t.Errorf("expected reseeded name, got %q", got)
	}
}

func TestEditWithoutSelectionIsNoop(t *testing.T) {
	app, _ := newTestApp(t)

	app.openEditDialog()
	if app.editDialog.Visible() || app.modalManager.IsModalActive() {
		t.Error("expected nothing to open without servers")
	}
}

func TestDeleteServer(t *testing.T) {
	app, path := newTestApp(t,
		config.Server{Name: "alpha", URL: "https://a.example.com", Identity: "/a", Order: 0},
		config.Server{Name: "beta", URL: "https://b.example.com", Identity: "/b", Order: 1},
	)

	app.handleMainKey(runeKey('d'))
	if app.modalManager.Depth() != 1 {
		t.Fatalf("expected confirmation modal, got depth %d", app.modalManager.Depth())
	}
	if len(loadServers(t, path)) != 2 {
		t.Fatal("nothing should be removed before confirming")
	}

	app.modalManager.HideModal()
	app.deleteServer(app.config.Servers[0])

	servers := loadServers(t, path)
	if len(servers) != 1 || servers[0].Name != "beta" {
		t.Errorf("expected only beta left, got %+v", servers)
	}
	if app.serverList.GetRowCount() != 2 {
		t.Errorf("expected table refresh, got %d rows", app.serverList.GetRowCount())
	}
}

func TestEditAfterReloadTargetsSameServer(t *testing.T) {
	a := config.Server{Name: "A", URL: "https://a.example.com", Identity: "/a", Order: 0}
	b := config.Server{Name: "B", URL: "https://b.example.com", Identity: "/b", Order: 1}
	c := config.Server{Name: "C", URL: "https://c.example.com", Identity: "/c", Order: 2}
	app, path := newTestApp(t, a, b, c)

	app.serverList.Select(2, 0)
	app.openEditDialog()
	if got := app.editDialog.State().Name; got != "B" {
		t.Fatalf("expected to edit B, got %q", got)
	}

	external := &config.Config{Servers: []config.Server{b, c}}
	if err := external.SaveToPath(path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}
	app.reloadConfig()

	app.editDialog.EditField(FieldName, "B2")
	app.editDialog.AttemptSave()

	if app.editDialog.Visible() {
		t.Fatal("expected dialog to close after save")
	}
	servers := loadServers(t, path)
	renamed := b
	renamed.Name = "B2"
	expected := []config.Server{renamed, c}
	if len(servers) != len(expected) {
		t.Fatalf("expected %+v, got %+v", expected, servers)
	}
	for i := range expected {
		if servers[i] != expected[i] {
			t.Errorf("server %d: expected %+v, got %+v", i, expected[i], servers[i])
		}
	}
}

func TestEditRefusedWhenServerChangedElsewhere(t *testing.T) {
	a := config.Server{Name: "A", URL: "https://a.example.com", Identity: "/a", Order: 0}
	b := config.Server{Name: "B", URL: "https://b.example.com", Identity: "/b", Order: 1}
	app, path := newTestApp(t, a, b)

	app.serverList.Select(2, 0)
	app.openEditDialog()

	changed := b
	changed.URL = "https://elsewhere.example.com"
	external := &config.Config{Servers: []config.Server{a, changed}}
	if err := external.SaveToPath(path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}
	app.reloadConfig()

	app.editDialog.EditField(FieldName, "B2")
	app.editDialog.AttemptSave()

	if app.modalManager.Depth() != 2 {
		t.Fatalf("expected error modal over dialog, got depth %d", app.modalManager.Depth())
	}
	if !app.editDialog.Visible() {
		t.Error("expected dialog to stay open")
	}
	servers := loadServers(t, path)
	if servers[0] != a || servers[1] != changed {
		t.Errorf("expected file untouched, got %+v", servers)
	}
}

func TestDeleteRefusedWhenServerRemovedElsewhere(t *testing.T) {
	a := config.Server{Name: "A", URL: "https://a.example.com", Identity: "/a", Order: 0}
	b := config.Server{Name: "B", URL: "https://b.example.com", Identity: "/b", Order: 1}
	app, path := newTestApp(t, a, b)

	external := &config.Config{Servers: []config.Server{b}}
	if err := external.SaveToPath(path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}
	app.reloadConfig()

	app.deleteServer(a)

	if app.modalManager.Depth() != 1 {
		t.Errorf("expected error modal, got depth %d", app.modalManager.Depth())
	}
	servers := loadServers(t, path)
	if len(servers) != 1 || servers[0] != b {
		t.Errorf("expected B to survive, got %+v", servers)
	}
}

func TestApplyConfigLeavesOpenDialogAlone(t *testing.T) {
	app, _ := newTestApp(t,
		config.Server{Name: "alpha", URL: "https://a.example.com", Identity: "/a"},
	)

	app.openEditDialog()
	app.editDialog.EditField(FieldName, "typing")

	app.applyConfig(&config.Config{Servers: []config.Server{
		{Name: "alpha-remote", URL: "https://a.example.com", Identity: "/a"},
	}})

	if got := app.editDialog.State().Name; got != "typing" {
		t.Errorf("expected edit to survive reload, got %q", got)
	}
	if got := app.serverList.GetCell(1, 1).Text; got != "alpha-remote" {
		t.Errorf("expected table to show reloaded config, got %q", got)
	}
}

func TestReloadConfigFromDisk(t *testing.T) {
	app, path := newTestApp(t)

	external := &config.Config{Servers: []config.Server{
		{Name: "external", URL: "https://x.example.com", Identity: "/x"},
	}}
	if err := external.SaveToPath(path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	app.handleMainKey(runeKey('r'))
	if len(app.GetConfig().Servers) != 1 {
		t.Errorf("expected reload to pick up external change, got %d servers", len(app.GetConfig().Servers))
	}
}

func TestGlobalKeysIgnoredWhileModalOpen(t *testing.T) {
	app, _ := newTestApp(t)
	app.openAddDialog()

	capture := app.app.GetInputCapture()
	if capture == nil {
		t.Fatal("expected application input capture")
	}
	ev := runeKey('q')
	if capture(ev) != ev {
		t.Error("expected keys to pass through to the dialog")
	}
	if !app.addDialog.Visible() {
		t.Error("expected dialog to remain open")
	}
}

func TestHelpModal(t *testing.T) {
	app, path := newTestApp(t)

	content := app.help.Content()
	if !strings.Contains(content, "Add a server") {
		t.Error("expected help to describe adding servers")
	}
	if !strings.Contains(content, path) {
		t.Error("expected help to show the server file path")
	}

	app.handleMainKey(runeKey('?'))
	if app.modalManager.Depth() != 1 {
		t.Fatalf("expected help modal, got depth %d", app.modalManager.Depth())
	}
	app.help.closeHelpModal()
	if app.modalManager.IsModalActive() {
		t.Error("expected help modal closed")
	}
}

func TestStopWhenNotRunning(t *testing.T) {
	app, _ := newTestApp(t)
	app.Stop()
	if app.running {
		t.Error("expected app not running")
	}
}
