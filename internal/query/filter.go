// Package query derives the filtered item view shown in the list.
package query

import (
	"strings"

	"stocktake-cli/internal/model"
)

// Filter returns the items whose name contains q (case-insensitive) or whose
// barcode contains q (case-sensitive). An empty query returns items unchanged.
// The result preserves the original relative order.
func Filter(items []model.Item, q string) []model.Item {
	if q == "" {
		return items
	}
	lq := strings.ToLower(q)
	var out []model.Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), lq) || strings.Contains(it.Barcode, q) {
			out = append(out, it)
		}
	}
	return out
}
