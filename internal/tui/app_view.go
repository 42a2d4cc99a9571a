package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	header := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Stocktake  Dir=%s  %s", m.dir, m.itemCountLabel()))

	bodyH := m.height - 6
	if bodyH < 6 {
		bodyH = 6
	}

	var body string
	switch m.modal {
	case modalItemForm:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.renderItemForm())
	case modalConfirmDelete:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.renderConfirmDelete())
	case modalScanner:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.renderScannerOverlay())
	default:
		body = m.renderMain(bodyH)
	}

	search := m.renderSearchBar()
	wedge := lipgloss.NewStyle().Foreground(colorAccent).Render("scan› ") + m.wedgeInput.View()

	footer := styleMuted().Render("enter: resolve/edit  ctrl+a: add  ctrl+d: delete  ctrl+s: camera  /: search  ctrl+r: reload  ctrl+c: quit")
	if m.minibufferText != "" {
		footer = lipgloss.NewStyle().Foreground(colorAccent).Render(m.minibufferText)
	}

	return strings.Join([]string{header, search, body, wedge, footer}, "\n")
}

func (m appModel) itemCountLabel() string {
	if m.loadErr != "" || m.db == nil {
		return "-"
	}
	n := len(m.db.Items)
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func (m appModel) renderSearchBar() string {
	if !m.searching && m.searchInput.Value() == "" {
		return styleMuted().Render("/: search")
	}
	return styleMuted().Render("search: ") + m.searchInput.View()
}

func (m appModel) renderMain(bodyH int) string {
	if m.loadErr != "" {
		msg := styleError().Render("Could not load items: " + m.loadErr)
		hint := styleMuted().Render("Fix or remove the data file, then press ctrl+r to retry.")
		return lipgloss.Place(m.width, bodyH, lipgloss.Left, lipgloss.Top, msg+"\n"+hint)
	}

	if !m.detailVisible() {
		return m.itemsList.View()
	}

	detailW := detailPaneWidth(m.width)
	listW := m.width - detailW - splitGapW
	left := normalizePane(m.itemsList.View(), listW, bodyH)
	right := normalizePane(m.renderDetail(detailW), detailW, bodyH)
	gap := strings.Repeat(" ", splitGapW)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

func (m appModel) renderDetail(width int) string {
	it, ok := m.itemsList.SelectedItem().(stockItem)
	if !ok {
		return styleMuted().Render("No item selected.")
	}

	name := lipgloss.NewStyle().Bold(true).Width(width).Render(it.item.Name)
	lines := []string{
		name,
		"",
		fmt.Sprintf("Quantity  %d", it.item.Quantity),
	}
	if it.item.Barcode != "" {
		lines = append(lines, "Barcode   "+it.item.Barcode)
	}
	lines = append(lines,
		"",
		styleMuted().Render("created "+it.item.CreatedAt.Local().Format("2006-01-02 15:04")),
		styleMuted().Render("updated "+it.item.UpdatedAt.Local().Format("2006-01-02 15:04")),
	)
	return strings.Join(lines, "\n")
}

func (m appModel) renderItemForm() string {
	title := "Edit item"
	if m.target != nil && m.target.IsNew {
		title = "New item"
	}

	label := styleMuted()
	rows := []string{
		label.Render("Name"),
		m.nameInput.View(),
		"",
		label.Render("Quantity"),
		m.qtyInput.View(),
		"",
		label.Render("Barcode"),
		m.barcodeInput.View(),
	}
	if m.formErr != "" {
		rows = append(rows, "", styleError().Render(m.formErr))
	}
	rows = append(rows, "", styleMuted().Render("tab: next field   enter: save   esc: cancel"))

	return renderModalBox(m.width, title, strings.Join(rows, "\n"))
}

func (m appModel) renderConfirmDelete() string {
	name := ""
	if m.deleteTarget != nil {
		name = m.deleteTarget.Name
	}
	body := fmt.Sprintf("Delete %q? This cannot be undone.", name)
	return renderConfirmModal(m.width, "Delete item", body, "Delete", "Cancel", m.confirmFocus)
}

func (m appModel) renderScannerOverlay() string {
	var body string
	switch m.scanState {
	case scanStarting:
		body = "Starting camera…"
	case scanActive:
		body = fmt.Sprintf("Scanning on %s — point a barcode at the camera.", m.scanLabel)
	case scanFailed:
		body = styleError().Render(m.scanErr)
	}
	content := strings.Join([]string{
		body,
		"",
		styleMuted().Render("esc: close"),
	}, "\n")
	return renderModalBox(m.width, "Camera scan", content)
}
