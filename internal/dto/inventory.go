package dto

import (
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest registers a new stock item.
type CreateInventoryItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Unit          string          `json:"unit" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	LowStockLevel decimal.Decimal `json:"lowStockLevel"`
}

// AdjustInventoryRequest changes an item's quantity by a signed delta
// (deliveries positive, corrections either way).
type AdjustInventoryRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// RecordUsageRequest deducts stock and records why.
type RecordUsageRequest struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason"`
}
