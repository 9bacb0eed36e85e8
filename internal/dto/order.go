package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
)

// CreateOrderItemRequest selects a menu item and quantity.
type CreateOrderItemRequest struct {
	MenuItemID string `json:"menuItemID" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest opens a new table order.
type CreateOrderRequest struct {
	Table string                   `json:"table" binding:"required"`
	Items []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CompleteOrderRequest settles an order. The payment method must be one of
// cash, card or iban (custom "paymentmethod" validator).
type CompleteOrderRequest struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
}

// OrderResponse mirrors a domain.Order.
type OrderResponse struct {
	OrderID       string               `json:"orderID"`
	Table         string               `json:"table"`
	Items         []domain.OrderItem   `json:"items"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod,omitempty"`
	Total         decimal.Decimal      `json:"total"`
	TaxAmount     decimal.Decimal      `json:"taxAmount"`
	TotalWithTax  decimal.Decimal      `json:"totalWithTax"`
	LedgerEntryID string               `json:"ledgerEntryID,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ToOrderResponse converts a domain.Order.
func ToOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:       o.OrderID,
		Table:         o.Table,
		Items:         o.Items,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		TaxAmount:     o.TaxAmount,
		TotalWithTax:  o.TotalWithTax,
		LedgerEntryID: o.LedgerEntryID,
		CreatedAt:     o.CreatedAt,
	}
}

// ToOrderResponses converts a slice of orders.
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
