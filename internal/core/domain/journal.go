package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefType tags the business event a journal entry originated from.
type RefType string

const (
	RefManual  RefType = "manual"
	RefOrder   RefType = "order"
	RefInvoice RefType = "invoice"
	RefBill    RefType = "bill"
	RefPayment RefType = "payment"
)

// JournalLine is a single debit/credit line inside a journal entry.
// It is a value type and never exists outside its entry. A line carries
// the net effect debit minus credit; both fields are non-negative.
type JournalLine struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// Net returns the debit-normal effect of the line (debit minus credit).
func (l JournalLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// JournalEntry is one balanced, immutable business event in the ledger.
// Entries are append-only: once written they are never updated or deleted,
// and every balance or statement is derived by re-reading the full history.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`     // Assigned by the writer (UUID)
	Date        string          `json:"date"`        // Accounting date, YYYY-MM-DD
	Memo        string          `json:"memo"`        // Free-text description
	Lines       []JournalLine   `json:"lines"`       // Insertion order preserved for display
	TotalDebit  decimal.Decimal `json:"totalDebit"`  // Stored redundantly for fast display
	TotalCredit decimal.Decimal `json:"totalCredit"` // Stored redundantly for fast display
	RefType     RefType         `json:"refType"`
	RefID       string          `json:"refID"`
	RefText     string          `json:"refText"`
	CreatedAt   time.Time       `json:"createdAt"`
}
