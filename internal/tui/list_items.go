package tui

import (
	"fmt"

	"stocktake-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type stockItem struct {
	item model.Item
}

func (i stockItem) Title() string { return i.item.Name }

func (i stockItem) Description() string {
	if i.item.Barcode == "" {
		return fmt.Sprintf("qty %d", i.item.Quantity)
	}
	return fmt.Sprintf("qty %d · %s", i.item.Quantity, i.item.Barcode)
}

func (i stockItem) FilterValue() string { return i.item.Name + " " + i.item.Barcode }

func newItemsList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Items"
	// We render our own header/footer/search; keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	// Search is an explicit query.Filter pass, not the list's fuzzy filter.
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetStatusBarItemName("item", "items")
	// The bubbles list defaults to quitting on q/esc; every printable rune
	// belongs to the wedge input here, and esc is "cancel".
	l.KeyMap.Quit.SetKeys("ctrl+c")
	return l
}
