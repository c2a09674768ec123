package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ModalManager keeps a stack of modals over the main layout
type ModalManager struct {
	app        *tview.Application
	layout     tview.Primitive
	modalStack []tview.Primitive
}

// NewModalManager creates a new modal manager
func NewModalManager(app *tview.Application, layout tview.Primitive) *ModalManager {
	return &ModalManager{
		app:        app,
		layout:     layout,
		modalStack: make([]tview.Primitive, 0),
	}
}

// ShowModal displays a modal on top of the current interface
func (mm *ModalManager) ShowModal(modal tview.Primitive) {
	mm.modalStack = append(mm.modalStack, modal)
	mm.app.SetRoot(modal, true)
	mm.app.SetFocus(modal)
}

// HideModal hides the current modal and returns to the previous one or the main layout
func (mm *ModalManager) HideModal() {
	if len(mm.modalStack) == 0 {
		return
	}

	mm.modalStack = mm.modalStack[:len(mm.modalStack)-1]

	next := mm.layout
	if len(mm.modalStack) > 0 {
		next = mm.modalStack[len(mm.modalStack)-1]
	}
	mm.app.SetRoot(next, true)
	mm.app.SetFocus(next)
}

// IsModalActive returns whether any modal is currently active
func (mm *ModalManager) IsModalActive() bool {
	return len(mm.modalStack) > 0
}

// GetCurrentModal returns the currently active modal, or nil if none
func (mm *ModalManager) GetCurrentModal() tview.Primitive {
	if len(mm.modalStack) == 0 {
		return nil
	}
	return mm.modalStack[len(mm.modalStack)-1]
}

// Depth returns the number of stacked modals
func (mm *ModalManager) Depth() int {
	return len(mm.modalStack)
}

// ClearAllModals closes all modals and returns to the main interface
func (mm *ModalManager) ClearAllModals() {
	mm.modalStack = make([]tview.Primitive, 0)
	mm.app.SetRoot(mm.layout, true)
	mm.app.SetFocus(mm.layout)
}

// newMessageModal builds a one-button modal that calls done when dismissed
func newMessageModal(text string, done func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { done() })
	modal.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			done()
			return nil
		}
		return event
	})
	return modal
}

// newConfirmModal asks a yes/no question. confirm runs only for the first button.
func newConfirmModal(text, confirmLabel string, confirm, cancel func()) *tview.Modal {
	return tview.NewModal().
		SetText(text).
		AddButtons([]string{confirmLabel, "Cancel"}).
		SetDoneFunc(func(buttonIndex int, _ string) {
			if buttonIndex == 0 {
				confirm()
				return
			}
			cancel()
		})
}
