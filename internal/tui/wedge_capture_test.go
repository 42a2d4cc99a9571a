package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestWedgeUnknownCodeOpensCreatePrefilled(t *testing.T) {
	m := newTestModel(t)

	m = typeRunes(t, m, "12345")
	if got := m.wedgeInput.Value(); got != "12345" {
		t.Fatalf("expected wedge input to accumulate keystrokes, got %q", got)
	}

	m = press(t, m, keyEnter())
	if m.modal != modalItemForm {
		t.Fatalf("expected item form to open")
	}
	if m.target == nil || !m.target.IsNew {
		t.Fatalf("expected create mode for unknown barcode")
	}
	if got := m.barcodeInput.Value(); got != "12345" {
		t.Fatalf("expected barcode prefilled, got %q", got)
	}
	if got := m.nameInput.Value(); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}
	if got := m.qtyInput.Value(); got != "1" {
		t.Fatalf("expected quantity prefilled to 1, got %q", got)
	}
	if got := m.wedgeInput.Value(); got != "" {
		t.Fatalf("expected wedge input cleared after resolve, got %q", got)
	}
}

func TestWedgeKnownCodeOpensEdit(t *testing.T) {
	m := newTestModel(t)
	it := seedItem(t, &m, "Widget", 7, "99999")

	m = typeRunes(t, m, "99999")
	m = press(t, m, keyEnter())

	if m.modal != modalItemForm {
		t.Fatalf("expected item form to open")
	}
	if m.target == nil || m.target.IsNew {
		t.Fatalf("expected edit mode for known barcode")
	}
	if m.target.Item.ID != it.ID {
		t.Fatalf("expected item %d, got %d", it.ID, m.target.Item.ID)
	}
	if got := m.nameInput.Value(); got != "Widget" {
		t.Fatalf("expected name prefilled, got %q", got)
	}
	if got := m.qtyInput.Value(); got != "7" {
		t.Fatalf("expected quantity prefilled, got %q", got)
	}
}

func TestEnterWithEmptyWedgeEditsSelection(t *testing.T) {
	m := newTestModel(t)
	it := seedItem(t, &m, "Widget", 3, "")

	m = press(t, m, keyEnter())
	if m.modal != modalItemForm {
		t.Fatalf("expected item form to open for the selected item")
	}
	if m.target == nil || m.target.IsNew || m.target.Item.ID != it.ID {
		t.Fatalf("expected edit of selected item, got %+v", m.target)
	}
}

func TestDialogFocusContract(t *testing.T) {
	m := newTestModel(t)
	if !m.wedgeInput.Focused() {
		t.Fatalf("wedge input must start focused")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if m.wedgeInput.Focused() {
		t.Fatalf("wedge input must blur while the dialog is open")
	}
	if m.target == nil {
		t.Fatalf("target must be set while the dialog is open")
	}

	m = press(t, m, keyEsc())
	if m.modal != modalNone || m.target != nil {
		t.Fatalf("expected dialog closed and target cleared")
	}
	if !m.wedgeInput.Focused() {
		t.Fatalf("wedge input must regain focus when the dialog closes")
	}
}
