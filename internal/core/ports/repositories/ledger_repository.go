package repositories

import (
	"context"

	"github.com/restobook/restobook/internal/core/domain"
)

// LedgerRepository is the append-only ledger store boundary. Appends are
// all-or-nothing: a failed append leaves no partial entry behind. ListEntries
// returns the full history as an independent snapshot; display order is
// reverse-chronological but carries no semantic meaning.
type LedgerRepository interface {
	AppendEntry(ctx context.Context, entry domain.JournalEntry) error
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}
