package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked ingredient or supply.
type InventoryItem struct {
	ItemID        string          `json:"itemID"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"` // e.g. "kg", "l", "pcs"
	Quantity      decimal.Decimal `json:"quantity"`
	LowStockLevel decimal.Decimal `json:"lowStockLevel"`
	AuditFields
}

// IsLowStock reports whether the item has fallen to or below its threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.LowStockLevel)
}

// UsageRecord captures a stock deduction (kitchen usage, waste, correction).
type UsageRecord struct {
	UsageID  string          `json:"usageID"`
	ItemID   string          `json:"itemID"`
	ItemName string          `json:"itemName"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
	UsedAt   time.Time       `json:"usedAt"`
	UsedBy   string          `json:"usedBy"`
}
