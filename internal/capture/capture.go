// Package capture reconciles the three item input channels (manual form,
// keyboard-wedge scanner, camera decoder) into a single create-or-edit
// decision.
package capture

import (
	"stocktake-cli/internal/model"
)

// Resolve maps a captured barcode to the dialog target. The first item whose
// barcode equals code (exact, case-sensitive) wins and opens in edit mode.
// An unknown code opens a create form prefilled with only the barcode.
func Resolve(code string, items []model.Item) model.EditTarget {
	for _, it := range items {
		if it.Barcode != "" && it.Barcode == code {
			return model.EditTarget{Item: it, IsNew: false}
		}
	}
	return model.EditTarget{
		Item: model.Item{
			ID:       model.SentinelID,
			Name:     "",
			Quantity: 1,
			Barcode:  code,
		},
		IsNew: true,
	}
}

// ManualAdd is the explicit "Add" action: a blank create form, no barcode
// resolution involved.
func ManualAdd() model.EditTarget {
	return model.EditTarget{
		Item:  model.Item{ID: model.SentinelID, Quantity: 1},
		IsNew: true,
	}
}
