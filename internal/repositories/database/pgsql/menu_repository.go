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

type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository creates a repository for menu items.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

var _ portsrepo.MenuRepository = (*MenuRepository)(nil)

const menuItemColumns = `menu_item_id, name, category, price, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanMenuItem(row pgx.Row) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(
		&item.MenuItemID,
		&item.Name,
		&item.Category,
		&item.Price,
		&item.IsActive,
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

func (r *MenuRepository) SaveMenuItem(ctx context.Context, item domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (` + menuItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		item.MenuItemID,
		item.Name,
		item.Category,
		item.Price,
		item.IsActive,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save menu item: %w", err)
	}
	return nil
}

func (r *MenuRepository) FindMenuItemByID(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE menu_item_id = $1;`
	item, err := scanMenuItem(r.pool.QueryRow(ctx, query, menuItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find menu item %s: %w", menuItemID, err)
	}
	return item, nil
}

func (r *MenuRepository) FindMenuItemsByIDs(ctx context.Context, menuItemIDs []string) (map[string]domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE menu_item_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, menuItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := make(map[string]domain.MenuItem, len(menuItemIDs))
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item row: %w", err)
		}
		items[item.MenuItemID] = *item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu item rows: %w", err)
	}
	return items, nil
}

func (r *MenuRepository) ListMenuItems(ctx context.Context, includeInactive bool) ([]domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY category, name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating menu item rows: %w", err)
	}
	return items, nil
}

func (r *MenuRepository) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, category = $2, price = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE menu_item_id = $7;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Category,
		item.Price,
		item.IsActive,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
		item.MenuItemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
