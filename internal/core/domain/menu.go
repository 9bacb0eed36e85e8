package domain

import "github.com/shopspring/decimal"

// MenuItem is a sellable item on the restaurant menu.
type MenuItem struct {
	MenuItemID string          `json:"menuItemID"`
	Name       string          `json:"name"`
	Category   string          `json:"category"` // e.g. "mains", "drinks"
	Price      decimal.Decimal `json:"price"`    // Pre-tax unit price
	IsActive   bool            `json:"isActive"` // Soft delete flag
	AuditFields
}
