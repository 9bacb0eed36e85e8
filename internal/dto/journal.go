package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
)

// CreateJournalLineRequest is one debit/credit line of a candidate entry.
// Absent numeric fields default to zero.
type CreateJournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest is a candidate journal entry. Date defaults to
// today, RefType to "manual", RefID/RefText to empty strings.
type CreateJournalEntryRequest struct {
	Date    string                     `json:"date"`
	Memo    string                     `json:"memo"`
	Lines   []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
	RefType domain.RefType             `json:"refType"`
	RefID   string                     `json:"refID"`
	RefText string                     `json:"refText"`
}

// JournalLineResponse mirrors a stored journal line.
type JournalLineResponse struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse mirrors a stored journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Date        string                `json:"date"`
	Memo        string                `json:"memo"`
	Lines       []JournalLineResponse `json:"lines"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	RefType     domain.RefType        `json:"refType"`
	RefID       string                `json:"refID"`
	RefText     string                `json:"refText"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date,
		Memo:        e.Memo,
		Lines:       lines,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		RefType:     e.RefType,
		RefID:       e.RefID,
		RefText:     e.RefText,
		CreatedAt:   e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
