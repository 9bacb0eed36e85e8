package domain

import "github.com/shopspring/decimal"

// DocumentStatus is the lifecycle of an invoice or bill.
type DocumentStatus string

const (
	DocOpen DocumentStatus = "OPEN"
	DocPaid DocumentStatus = "PAID"
	DocVoid DocumentStatus = "VOID"
)

// Invoice is a receivable issued to a customer. Issuing posts a journal
// entry (AR debit, sales and VAT credit); payment posts the settlement.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	CustomerID     string          `json:"customerID"`
	Number         string          `json:"number"`
	Date           string          `json:"date"` // YYYY-MM-DD
	Amount         decimal.Decimal `json:"amount"`    // Net amount
	TaxAmount      decimal.Decimal `json:"taxAmount"` // VAT on top of Amount
	Status         DocumentStatus  `json:"status"`
	IssueEntryID   string          `json:"issueEntryID"`
	PaymentEntryID string          `json:"paymentEntryID"`
	AuditFields
}

// Gross is the total the customer owes.
func (i Invoice) Gross() decimal.Decimal {
	return i.Amount.Add(i.TaxAmount)
}

// Bill is a payable received from a vendor. Recording posts an expense
// debit against AP; payment posts the settlement out of cash or bank.
type Bill struct {
	BillID           string          `json:"billID"`
	VendorID         string          `json:"vendorID"`
	Number           string          `json:"number"`
	Date             string          `json:"date"` // YYYY-MM-DD
	Amount           decimal.Decimal `json:"amount"`
	ExpenseAccountID string          `json:"expenseAccountID"` // Which expense account the bill hits
	Status           DocumentStatus  `json:"status"`
	IssueEntryID     string          `json:"issueEntryID"`
	PaymentEntryID   string          `json:"paymentEntryID"`
	AuditFields
}
