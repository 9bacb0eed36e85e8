package domain

import "github.com/shopspring/decimal"

// OrderStatus is the state of a table order.
type OrderStatus string

const (
	OrderOpen      OrderStatus = "OPEN"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderVoid      OrderStatus = "VOID"
)

// PaymentMethod is how a completed order was settled.
type PaymentMethod string

const (
	PayCash PaymentMethod = "cash"
	PayCard PaymentMethod = "card"
	PayIBAN PaymentMethod = "iban"
)

// OrderItem is one menu line on an order, priced at order time so later
// menu edits do not change historical orders.
type OrderItem struct {
	MenuItemID string          `json:"menuItemID"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
}

// Order is a table-side order. Total is the pre-tax sum of its items,
// TotalWithTax the gross amount actually collected. LedgerEntryID is set
// exactly once, when the completed order is posted to the ledger, and
// guards against posting the same order twice.
type Order struct {
	OrderID       string          `json:"orderID"`
	Table         string          `json:"table"`
	Items         []OrderItem     `json:"items"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TotalWithTax  decimal.Decimal `json:"totalWithTax"`
	LedgerEntryID string          `json:"ledgerEntryID"`
	AuditFields
}

// GrossAmount is the amount actually collected for the order: the gross
// total when present, otherwise the plain total.
func (o Order) GrossAmount() decimal.Decimal {
	if o.TotalWithTax.IsPositive() {
		return o.TotalWithTax
	}
	return o.Total
}
