package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stocktake-cli/internal/capture"
	"stocktake-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type minibufferClearMsg struct{ seq int }

type scannerReadyMsg struct {
	seq   int
	sess  *capture.Session
	label string
}

type scannerFailedMsg struct {
	seq int
	err error
}

type scanResultMsg struct {
	seq  int
	code string
	err  error
}

func (m appModel) Init() tea.Cmd { return textinput.Blink }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case scannerReadyMsg:
		if msg.seq != m.scanSeq || m.modal != modalScanner {
			// The overlay was dismissed while the camera was starting.
			_ = msg.sess.Close()
			return m, nil
		}
		m.scanSess = msg.sess
		m.scanState = scanActive
		m.scanLabel = msg.label
		return m, waitForScanCmd(msg.sess, msg.seq)

	case scannerFailedMsg:
		if msg.seq != m.scanSeq || m.modal != modalScanner {
			return m, nil
		}
		// Overlay stays open so the user can read the error and dismiss it.
		m.scanState = scanFailed
		m.scanErr = msg.err.Error()
		return m, m.showMinibuffer("Scanner: " + msg.err.Error())

	case scanResultMsg:
		if msg.seq != m.scanSeq || m.modal != modalScanner {
			return m, nil
		}
		// First() already released the camera.
		m.scanSess = nil
		m.modal = modalNone
		if msg.err != nil {
			m.wedgeInput.Focus()
			return m, m.showMinibuffer("Scan canceled")
		}
		return m, m.resolveCode(msg.code, model.ScanSourceCamera)

	case tea.KeyMsg:
		switch m.modal {
		case modalItemForm:
			return m.updateItemForm(msg)
		case modalConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modalScanner:
			return m.updateScanner(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.loadErr != "" {
		// Storage is unreadable: the list is not rendered and nothing that
		// needs it is reachable until a reload succeeds.
		switch key {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.reload()
			if m.loadErr == "" {
				return m, m.showMinibuffer("Reloaded")
			}
		}
		return m, nil
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+r":
		m.reload()
		return m, m.showMinibuffer("Reloaded")

	case "ctrl+a":
		m.openItemDialog(capture.ManualAdd(), model.ScanSourceManual)
		return m, textinput.Blink

	case "ctrl+s":
		m.modal = modalScanner
		m.scanState = scanStarting
		m.scanErr = ""
		m.scanLabel = ""
		m.scanSeq++
		m.wedgeInput.Blur()
		m.searching = false
		m.searchInput.Blur()
		return m, m.startScannerCmd(m.scanSeq)

	case "ctrl+d":
		if it, ok := m.itemsList.SelectedItem().(stockItem); ok {
			sel := it.item
			m.deleteTarget = &sel
			m.confirmFocus = confirmFocusConfirm
			m.modal = modalConfirmDelete
			m.wedgeInput.Blur()
		}
		return m, nil

	case "/":
		m.searching = true
		m.wedgeInput.Blur()
		m.searchInput.Focus()
		return m, textinput.Blink

	case "esc":
		if m.searching || m.searchInput.Value() != "" {
			m.searching = false
			m.searchInput.SetValue("")
			m.searchInput.Blur()
			m.wedgeInput.Focus()
			m.refreshItems()
			return m, nil
		}
		m.wedgeInput.SetValue("")
		return m, nil

	case "enter":
		if m.searching {
			// Keep the query; hand focus back to the wedge input.
			m.searching = false
			m.searchInput.Blur()
			m.wedgeInput.Focus()
			return m, nil
		}
		if code := strings.TrimSpace(m.wedgeInput.Value()); code != "" {
			m.wedgeInput.SetValue("")
			return m, m.resolveCode(code, model.ScanSourceWedge)
		}
		if it, ok := m.itemsList.SelectedItem().(stockItem); ok {
			m.openItemDialog(model.EditTarget{Item: it.item, IsNew: false}, model.ScanSourceManual)
			return m, textinput.Blink
		}
		return m, nil

	case "up", "down", "pgup", "pgdown", "home", "end", "ctrl+p", "ctrl+n":
		var cmd tea.Cmd
		m.itemsList, cmd = m.itemsList.Update(msg)
		return m, cmd
	}

	// Everything else is typed text: search while the search input is
	// focused, otherwise the wedge capture input (scanner keystrokes land
	// here without any prior interaction).
	var cmd tea.Cmd
	if m.searching {
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.refreshItems()
		return m, cmd
	}
	m.wedgeInput, cmd = m.wedgeInput.Update(msg)
	return m, cmd
}

// resolveCode is the shared resolution step for the wedge and camera paths.
func (m *appModel) resolveCode(code string, source model.ScanSource) tea.Cmd {
	target := capture.Resolve(code, m.db.Items)
	m.logScan(source, code, target.Item.ID, "resolve")
	m.openItemDialog(target, source)
	return textinput.Blink
}

func (m appModel) updateItemForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeItemDialog()
		return m, nil
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % 3
		m.focusFormField()
		return m, textinput.Blink
	case "shift+tab", "up":
		m.formFocus = (m.formFocus + 2) % 3
		m.focusFormField()
		return m, textinput.Blink
	case "enter":
		return m.submitItemForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case formFocusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case formFocusQuantity:
		m.qtyInput, cmd = m.qtyInput.Update(msg)
	case formFocusBarcode:
		m.barcodeInput, cmd = m.barcodeInput.Update(msg)
	}
	return m, cmd
}

// submitItemForm applies the validation contract: no write happens and the
// dialog stays open unless name is non-empty and quantity is a positive
// integer. Barcode is optional and unvalidated.
func (m appModel) submitItemForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.nameInput.Value())
	qtyRaw := strings.TrimSpace(m.qtyInput.Value())
	barcode := strings.TrimSpace(m.barcodeInput.Value())

	if name == "" {
		m.formErr = "Name is required"
		return m, nil
	}
	qty, err := strconv.Atoi(qtyRaw)
	if err != nil || qty <= 0 {
		m.formErr = "Quantity must be a positive integer"
		return m, nil
	}

	target := *m.target
	if target.IsNew {
		it, err := m.store.Create(name, qty, barcode)
		if err != nil {
			m.formErr = "Save failed: " + err.Error()
			return m, nil
		}
		m.logScan(m.targetSource, barcode, it.ID, "create")
		m.reload()
		m.closeItemDialog()
		return m, m.showMinibuffer(fmt.Sprintf("Created %q", it.Name))
	}

	it := target.Item
	it.Name = name
	it.Quantity = qty
	it.Barcode = barcode
	updated, err := m.store.Update(it)
	if err != nil {
		m.formErr = "Save failed: " + err.Error()
		return m, nil
	}
	m.logScan(m.targetSource, barcode, updated.ID, "update")
	m.reload()
	m.closeItemDialog()
	return m, m.showMinibuffer(fmt.Sprintf("Updated %q", updated.Name))
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.deleteTarget = nil
		m.modal = modalNone
		m.wedgeInput.Focus()
		return m, nil
	case "tab", "shift+tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		target := m.deleteTarget
		m.deleteTarget = nil
		m.modal = modalNone
		m.wedgeInput.Focus()
		if m.confirmFocus != confirmFocusConfirm || target == nil {
			return m, nil
		}
		if err := m.store.DeleteByID(target.ID); err != nil {
			// List state is unchanged; just tell the user.
			return m, m.showMinibuffer("Delete failed: " + err.Error())
		}
		m.logScan(model.ScanSourceManual, target.Barcode, target.ID, "delete")
		m.reload()
		return m, m.showMinibuffer(fmt.Sprintf("Deleted %q", target.Name))
	}
	return m, nil
}

func (m appModel) updateScanner(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.scanSess != nil {
			_ = m.scanSess.Close()
		}
		return m, tea.Quit
	case "esc", "enter":
		// Dismiss the overlay; closing the session releases the camera and
		// unblocks the pending wait (its stale result is dropped by seq).
		if m.scanSess != nil {
			_ = m.scanSess.Close()
			m.scanSess = nil
		}
		m.modal = modalNone
		m.wedgeInput.Focus()
		return m, nil
	}
	return m, nil
}

func (m appModel) startScannerCmd(seq int) tea.Cmd {
	dec := m.dec
	return func() tea.Msg {
		ctx := context.Background()
		devices, err := dec.ListDevices(ctx)
		if err != nil {
			return scannerFailedMsg{seq: seq, err: err}
		}
		dev := devices[0]
		sess, err := capture.StartSession(ctx, dec, dev.ID)
		if err != nil {
			return scannerFailedMsg{seq: seq, err: err}
		}
		return scannerReadyMsg{seq: seq, sess: sess, label: dev.Label}
	}
}

func waitForScanCmd(sess *capture.Session, seq int) tea.Cmd {
	return func() tea.Msg {
		code, err := sess.First(context.Background())
		return scanResultMsg{seq: seq, code: code, err: err}
	}
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}

// logScan appends to the audit log; failures are deliberately swallowed so
// the log can never break a capture or a save.
func (m appModel) logScan(source model.ScanSource, code string, itemID int64, action string) {
	_ = m.store.AppendScanEvent(context.Background(), model.ScanEvent{
		Source: source,
		Code:   code,
		ItemID: itemID,
		Action: action,
	})
}
