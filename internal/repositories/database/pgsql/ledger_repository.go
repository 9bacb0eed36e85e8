package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
)

// LedgerRepository stores journal entries in journal_entries plus
// journal_lines. Entries are append-only; no update or delete statements
// exist for either table.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a repository for the append-only ledger.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// AppendEntry writes the entry header and its lines inside one database
// transaction so a failure leaves no partial entry behind.
func (r *LedgerRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, memo, total_debit, total_credit, ref_type, ref_id, ref_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.Date,
		entry.Memo,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.RefType,
		entry.RefID,
		entry.RefText,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, line_no, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5);
	`
	for i, line := range entry.Lines {
		batch.Queue(lineQuery, entry.EntryID, i, line.AccountID, line.Debit, line.Credit)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for entry %s: %w", entry.EntryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry %s: %w", entry.EntryID, err)
	}

	return nil
}

// ListEntries returns the full ledger, newest entry first, with each
// entry's lines in insertion order.
func (r *LedgerRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_date, memo, total_debit, total_credit, ref_type, ref_id, ref_text, created_at
		FROM journal_entries
		ORDER BY created_at DESC, entry_id DESC;
	`
	rows, err := r.pool.Query(ctx, entryQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []string{}
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.Date,
			&entry.Memo,
			&entry.TotalDebit,
			&entry.TotalCredit,
			&entry.RefType,
			&entry.RefID,
			&entry.RefText,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}

	return entries, nil
}

// FindEntryByID retrieves one entry with its lines.
func (r *LedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, entry_date, memo, total_debit, total_credit, ref_type, ref_id, ref_text, created_at
		FROM journal_entries
		WHERE entry_id = $1;
	`
	var entry domain.JournalEntry
	err := r.pool.QueryRow(ctx, query, entryID).Scan(
		&entry.EntryID,
		&entry.Date,
		&entry.Memo,
		&entry.TotalDebit,
		&entry.TotalCredit,
		&entry.RefType,
		&entry.RefID,
		&entry.RefText,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = linesByEntry[entryID]

	return &entry, nil
}

// findLinesByEntryIDs loads the lines for a set of entries in one query and
// groups them by entry id, preserving line order.
func (r *LedgerRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	query := `
		SELECT entry_id, account_id, debit, credit
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`
	rows, err := r.pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		var entryID string
		var line domain.JournalLine
		if err := rows.Scan(&entryID, &line.AccountID, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		linesByEntry[entryID] = append(linesByEntry[entryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}

	return linesByEntry, nil
}
