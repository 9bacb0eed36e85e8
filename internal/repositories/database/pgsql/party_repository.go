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

type PartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a repository for vendors and customers.
func NewPartyRepository(pool *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{pool: pool}
}

var _ portsrepo.PartyRepository = (*PartyRepository)(nil)

const partyColumns = `party_id, kind, name, email, phone, tax_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanParty(row pgx.Row) (*domain.Party, error) {
	var party domain.Party
	err := row.Scan(
		&party.PartyID,
		&party.Kind,
		&party.Name,
		&party.Email,
		&party.Phone,
		&party.TaxID,
		&party.IsActive,
		&party.CreatedAt,
		&party.CreatedBy,
		&party.LastUpdatedAt,
		&party.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

func (r *PartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		party.PartyID,
		party.Kind,
		party.Name,
		party.Email,
		party.Phone,
		party.TaxID,
		party.IsActive,
		party.CreatedAt,
		party.CreatedBy,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save party: %w", err)
	}
	return nil
}

func (r *PartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`
	party, err := scanParty(r.pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	return party, nil
}

func (r *PartyRepository) ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE kind = $1 ORDER BY name;`
	rows, err := r.pool.Query(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, *party)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}
	return parties, nil
}

func (r *PartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	query := `
		UPDATE parties
		SET name = $1, email = $2, phone = $3, tax_id = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE party_id = $8;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		party.Name,
		party.Email,
		party.Phone,
		party.TaxID,
		party.IsActive,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
		party.PartyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update party: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
