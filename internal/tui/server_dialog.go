package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const (
	dialogWidth  = 76
	dialogHeight = 17

	errorMarker = " ✗"
)

var fieldLabels = map[Field]string{
	FieldName:     "Server Display Name",
	FieldURL:      "Server URL",
	FieldIdentity: "Path to Ziti identity.json file",
}

var fieldPlaceholders = map[Field]string{
	FieldName:     "Server Name",
	FieldURL:      "https://example.com",
	FieldIdentity: "/Users/you/identity.json",
}

const dialogHelp = "[gray]Name: The name of the server displayed on your desktop app tab bar.\n" +
	"URL: The URL of your Mattermost server. Must start with http:// or https://.\n" +
	"Identity: The absolute PATH to your Ziti identity.json file associated with the above server.[-]"

// ServerDialogOptions configures a ServerFormDialog
type ServerDialogOptions struct {
	// EditMode selects the edit title and button label. Fixed for the dialog's lifetime.
	EditMode bool
	OnSave   func(ServerRecord)
	OnClose  func()
	Logger   zerolog.Logger
}

// ServerFormDialog is the modal used to add or edit a server entry
type ServerFormDialog struct {
	root       *tview.Flex
	body       *tview.Flex
	form       *tview.Form
	inputs     map[Field]*tview.InputField
	errorView  *tview.TextView
	saveButton *tview.Button

	state    FormState
	editMode bool
	onSave   func(ServerRecord)
	onClose  func()
	log      zerolog.Logger

	// syncing suppresses change callbacks while the dialog writes to its own inputs.
	syncing bool
}

// NewServerFormDialog builds a hidden dialog
func NewServerFormDialog(opts ServerDialogOptions) *ServerFormDialog {
	d := &ServerFormDialog{
		inputs:   make(map[Field]*tview.InputField, 3),
		editMode: opts.EditMode,
		onSave:   opts.OnSave,
		onClose:  opts.OnClose,
		log:      opts.Logger.With().Str("component", "server_dialog").Bool("edit_mode", opts.EditMode).Logger(),
	}

	d.form = tview.NewForm()
	for _, field := range []Field{FieldName, FieldURL, FieldIdentity} {
		input := tview.NewInputField().
			SetLabel(fieldLabels[field]).
			SetPlaceholder(fieldPlaceholders[field]).
			SetFieldWidth(44).
			SetChangedFunc(func(text string) {
				if d.syncing {
					return
				}
				d.EditField(field, text)
			})
		d.inputs[field] = input
		d.form.AddFormItem(input)
	}

	d.form.AddButton(d.SubmitLabel(), d.AttemptSave)
	d.form.AddButton("Cancel", d.Close)
	d.saveButton = d.form.GetButton(0)

	d.errorView = tview.NewTextView().SetDynamicColors(true)
	helpView := tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetText(dialogHelp)

	d.body = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.form, 0, 1, true).
		AddItem(helpView, 5, 0, false).
		AddItem(d.errorView, 1, 0, false)
	d.body.SetBorder(true).
		SetTitle(fmt.Sprintf(" %s ", d.Title())).
		SetTitleAlign(tview.AlignCenter)

	d.root = centered(d.body, dialogWidth, dialogHeight)
	d.root.SetInputCapture(d.HandleKey)

	d.refresh()
	return d
}

// centered places p in the middle of the screen
func centered(p tview.Primitive, width, height int) *tview.Flex {
	column := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(p, height, 0, true).
		AddItem(nil, 0, 1, false)
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(column, width, 0, true).
		AddItem(nil, 0, 1, false)
}

// Primitive returns the root primitive to hand to the modal manager
func (d *ServerFormDialog) Primitive() tview.Primitive {
	return d.root
}

// Title returns the dialog title
func (d *ServerFormDialog) Title() string {
	if d.editMode {
		return "Edit Server"
	}
	return "Add Server"
}

// SubmitLabel returns the label of the save button
func (d *ServerFormDialog) SubmitLabel() string {
	if d.editMode {
		return "Save"
	}
	return "Add"
}

// Show follows the host's visibility flag. The form is seeded only on a
// hidden to shown transition, so a shown dialog keeps the user's edits.
func (d *ServerFormDialog) Show(visible bool, seed *ServerRecord, currentOrder int) {
	if !visible {
		if d.state.Phase != PhaseHidden {
			d.state.Phase = PhaseHidden
			d.log.Debug().Msg("server dialog hidden")
		}
		return
	}
	if d.state.Phase != PhaseHidden {
		return
	}

	d.state = seedState(seed, currentOrder)
	d.syncInputs()
	d.refresh()
	d.form.SetFocus(0)

	evt := d.log.Debug().Int("order", d.state.Order)
	if d.state.Index != nil {
		evt = evt.Int("index", *d.state.Index)
	}
	evt.Msg("server dialog shown")
}

// Visible reports whether the dialog is shown
func (d *ServerFormDialog) Visible() bool {
	return d.state.Phase != PhaseHidden
}

// State returns a copy of the working state
func (d *ServerFormDialog) State() FormState {
	s := d.state
	s.Index = copyIndex(d.state.Index)
	return s
}

// EditField replaces the text of one field. It does not validate by itself;
// errors already visible are recomputed for the new text.
func (d *ServerFormDialog) EditField(field Field, value string) {
	d.state.set(field, value)

	if input, ok := d.inputs[field]; ok && input.GetText() != value {
		d.syncing = true
		input.SetText(value)
		d.syncing = false
	}
	d.refresh()
}

// AttemptSave makes errors visible and, if the form is valid, calls OnSave.
// It is a no-op while the dialog is hidden.
func (d *ServerFormDialog) AttemptSave() {
	if d.state.Phase == PhaseHidden {
		return
	}

	d.state.Phase = PhaseAttempted
	errs := d.Errors()
	d.refresh()

	if !errs.Valid() {
		d.log.Debug().Str("error", errs.Message()).Msg("server save rejected")
		return
	}

	record := d.state.Record()
	d.log.Info().Str("name", record.Name).Str("url", record.URL).Int("order", record.Order).Msg("server save accepted")
	if d.onSave != nil {
		d.onSave(record)
	}
}

// Close asks the host to close the dialog. The state is left alone; the next
// show reseeds it.
func (d *ServerFormDialog) Close() {
	if d.onClose != nil {
		d.onClose()
	}
}

// Errors returns the currently visible field errors
func (d *ServerFormDialog) Errors() FieldErrors {
	return Validate(d.state)
}

// ErrorMessage returns the single summary line, or "" when nothing is wrong
func (d *ServerFormDialog) ErrorMessage() string {
	return d.Errors().Message()
}

// IsValid reports whether no field shows an error. The save button is
// enabled exactly when this is true.
func (d *ServerFormDialog) IsValid() bool {
	return d.Errors().Valid()
}

// SaveEnabled reports whether the save button accepts presses
func (d *ServerFormDialog) SaveEnabled() bool {
	return !d.saveButton.IsDisabled()
}

// HandleKey is the dialog's input capture. Enter saves from any control,
// Escape closes.
func (d *ServerFormDialog) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter:
		d.AttemptSave()
		return nil
	case tcell.KeyEscape:
		d.Close()
		return nil
	}
	return event
}

func (d *ServerFormDialog) syncInputs() {
	d.syncing = true
	defer func() { d.syncing = false }()

	for field, input := range d.inputs {
		input.SetText(d.state.Value(field))
	}
}

// refresh redraws labels, the summary line and the save button from state.
func (d *ServerFormDialog) refresh() {
	errs := d.Errors()

	for field, input := range d.inputs {
		label := fieldLabels[field]
		if errs.For(field) != nil {
			label += errorMarker
		}
		input.SetLabel(label)
	}

	if msg := errs.Message(); msg != "" {
		d.errorView.SetText("[red]" + tview.Escape(msg) + "[-]")
	} else {
		d.errorView.SetText("")
	}

	d.saveButton.SetDisabled(!errs.Valid())
}
