package model

import "time"

// SentinelID marks an item that has not been created yet. The store assigns
// real ids starting at 1, so 0 never refers to a persisted item.
const SentinelID int64 = 0

type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Barcode  string `json:"barcode,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EditTarget is the decision of what the item dialog should show next:
// blank (manual add), prefilled-new (unknown barcode), or prefilled-existing.
type EditTarget struct {
	Item  Item
	IsNew bool
}

type ScanSource string

const (
	ScanSourceManual ScanSource = "manual"
	ScanSourceWedge  ScanSource = "wedge"
	ScanSourceCamera ScanSource = "camera"
)

// ScanEvent is one row of the append-only scan audit log.
type ScanEvent struct {
	ID     int64      `json:"id"`
	TS     time.Time  `json:"ts"`
	Source ScanSource `json:"source"`
	Code   string     `json:"code,omitempty"`
	ItemID int64      `json:"itemId,omitempty"`
	Action string     `json:"action"`
}
