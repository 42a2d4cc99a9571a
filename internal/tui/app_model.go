package tui

import (
	"strconv"

	"stocktake-cli/internal/capture"
	"stocktake-cli/internal/model"
	"stocktake-cli/internal/query"
	"stocktake-cli/internal/scanner"
	"stocktake-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalItemForm
	modalConfirmDelete
	modalScanner
)

type formFocus int

const (
	formFocusName formFocus = iota
	formFocusQuantity
	formFocusBarcode
)

type scanState int

const (
	scanStarting scanState = iota
	scanActive
	scanFailed
)

type appModel struct {
	dir   string
	store store.Store
	db    *store.DB
	dec   scanner.Decoder

	width  int
	height int

	// loadErr is the fatal-to-the-view storage failure: while set, no item
	// list is rendered. Cleared when a reload succeeds.
	loadErr string

	itemsList list.Model

	// wedgeInput is the always-focused capture input: a keyboard-wedge
	// scanner types into it without the user selecting anything first.
	wedgeInput  textinput.Model
	searchInput textinput.Model
	searching   bool

	modal modalKind

	// target is non-nil exactly while the item dialog is open.
	target       *model.EditTarget
	targetSource model.ScanSource
	nameInput    textinput.Model
	qtyInput     textinput.Model
	barcodeInput textinput.Model
	formFocus    formFocus
	formErr      string

	deleteTarget *model.Item
	confirmFocus confirmModalFocus

	scanSess *capture.Session
	// scanSeq drops stale messages from a dismissed or superseded session.
	scanSeq   int
	scanLabel string
	scanState scanState
	scanErr   string

	minibufferText string
	minibufferSeq  int
}

func newAppModel(dir string, dec scanner.Decoder) appModel {
	m := appModel{
		dir:   dir,
		store: store.Store{Dir: dir},
		dec:   dec,
	}

	m.itemsList = newItemsList()

	m.wedgeInput = textinput.New()
	m.wedgeInput.Placeholder = "scan or type a barcode, then enter"
	m.wedgeInput.CharLimit = 64
	m.wedgeInput.Width = 40
	m.wedgeInput.Focus()

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search name or barcode"
	m.searchInput.CharLimit = 64
	m.searchInput.Width = 40

	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "Name"
	m.nameInput.CharLimit = 120
	m.nameInput.Width = 40

	m.qtyInput = textinput.New()
	m.qtyInput.Placeholder = "Quantity"
	m.qtyInput.CharLimit = 9
	m.qtyInput.Width = 10

	m.barcodeInput = textinput.New()
	m.barcodeInput.Placeholder = "Barcode (optional)"
	m.barcodeInput.CharLimit = 64
	m.barcodeInput.Width = 40

	m.reload()
	return m
}

// reload re-reads the whole blob and re-derives the filtered view. A failed
// load keeps the previous in-memory state but blocks list rendering.
func (m *appModel) reload() {
	db, err := m.store.Load()
	if err != nil {
		m.loadErr = err.Error()
		return
	}
	m.loadErr = ""
	m.db = db
	m.refreshItems()
}

// refreshItems re-derives the filtered view, preserving the selection when
// the selected item survives the filter.
func (m *appModel) refreshItems() {
	if m.db == nil {
		return
	}
	var curID int64 = model.SentinelID
	if it, ok := m.itemsList.SelectedItem().(stockItem); ok {
		curID = it.item.ID
	}

	filtered := query.Filter(m.db.Items, m.searchInput.Value())
	items := make([]list.Item, 0, len(filtered))
	for _, it := range filtered {
		items = append(items, stockItem{item: it})
	}
	m.itemsList.SetItems(items)

	if curID != model.SentinelID {
		for i, li := range m.itemsList.Items() {
			if it, ok := li.(stockItem); ok && it.item.ID == curID {
				m.itemsList.Select(i)
				break
			}
		}
	}
}

// openItemDialog opens the form prefilled from the target and records the
// channel that produced it (for the audit log and notifications).
func (m *appModel) openItemDialog(target model.EditTarget, source model.ScanSource) {
	m.modal = modalItemForm
	m.target = &target
	m.targetSource = source
	m.formErr = ""

	m.nameInput.SetValue(target.Item.Name)
	m.qtyInput.SetValue(strconv.Itoa(target.Item.Quantity))
	m.barcodeInput.SetValue(target.Item.Barcode)

	m.formFocus = formFocusName
	m.wedgeInput.Blur()
	m.focusFormField()
}

// closeItemDialog clears the target and restores the focus contract: the
// wedge input must be typeable again without any extra interaction.
func (m *appModel) closeItemDialog() {
	m.modal = modalNone
	m.target = nil
	m.formErr = ""
	m.nameInput.Blur()
	m.qtyInput.Blur()
	m.barcodeInput.Blur()
	m.nameInput.SetValue("")
	m.qtyInput.SetValue("")
	m.barcodeInput.SetValue("")
	m.wedgeInput.Focus()
}

func (m *appModel) focusFormField() {
	m.nameInput.Blur()
	m.qtyInput.Blur()
	m.barcodeInput.Blur()
	switch m.formFocus {
	case formFocusName:
		m.nameInput.Focus()
	case formFocusQuantity:
		m.qtyInput.Focus()
	case formFocusBarcode:
		m.barcodeInput.Focus()
	}
}

func (m *appModel) resizeLists() {
	h := m.height - 8
	if h < 6 {
		h = 6
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	if m.detailVisible() {
		w = m.width - detailPaneWidth(m.width) - splitGapW
	}
	m.itemsList.SetSize(w, h)
}

const (
	minSplitW = 84
	splitGapW = 2
)

func (m appModel) detailVisible() bool {
	return m.width >= minSplitW
}

func detailPaneWidth(termWidth int) int {
	w := termWidth / 3
	if w < 28 {
		w = 28
	}
	if w > 44 {
		w = 44
	}
	return w
}
