package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository creates a repository for stock items and usage
// records.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

var _ portsrepo.InventoryRepository = (*InventoryRepository)(nil)

const inventoryItemColumns = `item_id, name, unit, quantity, low_stock_level, created_at, created_by, last_updated_at, last_updated_by`

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ItemID,
		&item.Name,
		&item.Unit,
		&item.Quantity,
		&item.LowStockLevel,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		item.ItemID,
		item.Name,
		item.Unit,
		item.Quantity,
		item.LowStockLevel,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE item_id = $1;`
	item, err := scanInventoryItem(r.pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	return item, nil
}

func (r *InventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", err)
	}
	return items, nil
}

// UpdateItemQuantity applies a signed delta atomically. The WHERE clause
// rejects a deduction that would take the quantity negative.
func (r *InventoryRepository) UpdateItemQuantity(ctx context.Context, itemID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $1, last_updated_at = $2, last_updated_by = $3
		WHERE item_id = $4 AND quantity + $1 >= 0;
	`
	cmdTag, err := r.pool.Exec(ctx, query, delta, updatedAt, updatedBy, itemID)
	if err != nil {
		return fmt.Errorf("failed to update inventory quantity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s missing or insufficient stock", apperrors.ErrConflict, itemID)
	}
	return nil
}

func (r *InventoryRepository) SaveUsage(ctx context.Context, usage domain.UsageRecord) error {
	query := `
		INSERT INTO inventory_usage (usage_id, item_id, item_name, quantity, reason, used_at, used_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		usage.UsageID,
		usage.ItemID,
		usage.ItemName,
		usage.Quantity,
		usage.Reason,
		usage.UsedAt,
		usage.UsedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save usage record: %w", err)
	}
	return nil
}

func (r *InventoryRepository) ListUsage(ctx context.Context, from, to time.Time) ([]domain.UsageRecord, error) {
	query := `
		SELECT usage_id, item_id, item_name, quantity, reason, used_at, used_by
		FROM inventory_usage
		WHERE used_at >= $1 AND used_at < $2
		ORDER BY used_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage records: %w", err)
	}
	defer rows.Close()

	records := []domain.UsageRecord{}
	for rows.Next() {
		var record domain.UsageRecord
		if err := rows.Scan(
			&record.UsageID,
			&record.ItemID,
			&record.ItemName,
			&record.Quantity,
			&record.Reason,
			&record.UsedAt,
			&record.UsedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan usage record row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage record rows: %w", err)
	}
	return records, nil
}
