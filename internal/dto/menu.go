package dto

import (
	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
)

// CreateMenuItemRequest adds an item to the menu.
type CreateMenuItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

// UpdateMenuItemRequest updates an item; nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	IsActive *bool            `json:"isActive"`
}

// MenuItemResponse mirrors a domain.MenuItem.
type MenuItemResponse struct {
	MenuItemID string          `json:"menuItemID"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	IsActive   bool            `json:"isActive"`
}

// ToMenuItemResponse converts a domain.MenuItem.
func ToMenuItemResponse(m *domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		MenuItemID: m.MenuItemID,
		Name:       m.Name,
		Category:   m.Category,
		Price:      m.Price,
		IsActive:   m.IsActive,
	}
}

// ToMenuItemResponses converts a slice of menu items.
func ToMenuItemResponses(items []domain.MenuItem) []MenuItemResponse {
	responses := make([]MenuItemResponse, len(items))
	for i := range items {
		responses[i] = ToMenuItemResponse(&items[i])
	}
	return responses
}
