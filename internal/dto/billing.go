package dto

import (
	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
)

// CreateInvoiceRequest issues a customer invoice.
type CreateInvoiceRequest struct {
	CustomerID string          `json:"customerID" binding:"required"`
	Number     string          `json:"number" binding:"required"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
}

// CreateBillRequest records a vendor bill against an expense account.
type CreateBillRequest struct {
	VendorID         string          `json:"vendorID" binding:"required"`
	Number           string          `json:"number" binding:"required"`
	Date             string          `json:"date"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
}

// PayDocumentRequest settles an invoice or bill via cash, card or iban.
type PayDocumentRequest struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
}

// InvoiceResponse mirrors a domain.Invoice.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	CustomerID     string                `json:"customerID"`
	Number         string                `json:"number"`
	Date           string                `json:"date"`
	Amount         decimal.Decimal       `json:"amount"`
	TaxAmount      decimal.Decimal       `json:"taxAmount"`
	Gross          decimal.Decimal       `json:"gross"`
	Status         domain.DocumentStatus `json:"status"`
	IssueEntryID   string                `json:"issueEntryID,omitempty"`
	PaymentEntryID string                `json:"paymentEntryID,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		CustomerID:     inv.CustomerID,
		Number:         inv.Number,
		Date:           inv.Date,
		Amount:         inv.Amount,
		TaxAmount:      inv.TaxAmount,
		Gross:          inv.Gross(),
		Status:         inv.Status,
		IssueEntryID:   inv.IssueEntryID,
		PaymentEntryID: inv.PaymentEntryID,
	}
}

// BillResponse mirrors a domain.Bill.
type BillResponse struct {
	BillID           string                `json:"billID"`
	VendorID         string                `json:"vendorID"`
	Number           string                `json:"number"`
	Date             string                `json:"date"`
	Amount           decimal.Decimal       `json:"amount"`
	ExpenseAccountID string                `json:"expenseAccountID"`
	Status           domain.DocumentStatus `json:"status"`
	IssueEntryID     string                `json:"issueEntryID,omitempty"`
	PaymentEntryID   string                `json:"paymentEntryID,omitempty"`
}

// ToBillResponse converts a domain.Bill.
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:           b.BillID,
		VendorID:         b.VendorID,
		Number:           b.Number,
		Date:             b.Date,
		Amount:           b.Amount,
		ExpenseAccountID: b.ExpenseAccountID,
		Status:           b.Status,
		IssueEntryID:     b.IssueEntryID,
		PaymentEntryID:   b.PaymentEntryID,
	}
}
