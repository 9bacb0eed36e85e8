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

// OrderRepository stores orders in orders plus order_items. Items are
// written once with the order and never change afterwards.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a repository for table orders.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

var _ portsrepo.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	orderQuery := `
		INSERT INTO orders (order_id, table_name, status, payment_method, total, tax_amount, total_with_tax, ledger_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.OrderID,
		order.Table,
		order.Status,
		order.PaymentMethod,
		order.Total,
		order.TaxAmount,
		order.TotalWithTax,
		order.LedgerEntryID,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO order_items (order_id, line_no, menu_item_id, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, item := range order.Items {
		batch.Queue(itemQuery, order.OrderID, i, item.MenuItemID, item.Name, item.UnitPrice, item.Quantity)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute item batch for order %s: %w", order.OrderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order %s: %w", order.OrderID, err)
	}

	return nil
}

func (r *OrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT order_id, table_name, status, payment_method, total, tax_amount, total_with_tax, ledger_entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM orders
		WHERE order_id = $1;
	`
	var order domain.Order
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&order.OrderID,
		&order.Table,
		&order.Status,
		&order.PaymentMethod,
		&order.Total,
		&order.TaxAmount,
		&order.TotalWithTax,
		&order.LedgerEntryID,
		&order.CreatedAt,
		&order.CreatedBy,
		&order.LastUpdatedAt,
		&order.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	itemsByOrder, err := r.findItemsByOrderIDs(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsByOrder[orderID]

	return &order, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, status *domain.OrderStatus, limit int) ([]domain.Order, error) {
	query := `
		SELECT order_id, table_name, status, payment_method, total, tax_amount, total_with_tax, ledger_entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM orders
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	orderIDs := []string{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.OrderID,
			&order.Table,
			&order.Status,
			&order.PaymentMethod,
			&order.Total,
			&order.TaxAmount,
			&order.TotalWithTax,
			&order.LedgerEntryID,
			&order.CreatedAt,
			&order.CreatedBy,
			&order.LastUpdatedAt,
			&order.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.findItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].OrderID]
	}

	return orders, nil
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	query := `
		UPDATE orders
		SET status = $1, payment_method = $2, ledger_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE order_id = $6;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		order.Status,
		order.PaymentMethod,
		order.LedgerEntryID,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
		order.OrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) findItemsByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	query := `
		SELECT order_id, menu_item_id, name, unit_price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no;
	`
	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.MenuItemID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}

	return itemsByOrder, nil
}
