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

type BillingRepository struct {
	pool *pgxpool.Pool
}

// NewBillingRepository creates a repository for invoices and bills.
func NewBillingRepository(pool *pgxpool.Pool) *BillingRepository {
	return &BillingRepository{pool: pool}
}

var _ portsrepo.BillingRepository = (*BillingRepository)(nil)

const invoiceColumns = `invoice_id, customer_id, number, doc_date, amount, tax_amount, status, issue_entry_id, payment_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := row.Scan(
		&invoice.InvoiceID,
		&invoice.CustomerID,
		&invoice.Number,
		&invoice.Date,
		&invoice.Amount,
		&invoice.TaxAmount,
		&invoice.Status,
		&invoice.IssueEntryID,
		&invoice.PaymentEntryID,
		&invoice.CreatedAt,
		&invoice.CreatedBy,
		&invoice.LastUpdatedAt,
		&invoice.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *BillingRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CustomerID,
		invoice.Number,
		invoice.Date,
		invoice.Amount,
		invoice.TaxAmount,
		invoice.Status,
		invoice.IssueEntryID,
		invoice.PaymentEntryID,
		invoice.CreatedAt,
		invoice.CreatedBy,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

func (r *BillingRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (r *BillingRepository) ListInvoices(ctx context.Context, status *domain.DocumentStatus) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY doc_date DESC, created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

func (r *BillingRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $1, payment_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $5;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		invoice.Status,
		invoice.PaymentEntryID,
		invoice.LastUpdatedAt,
		invoice.LastUpdatedBy,
		invoice.InvoiceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const billColumns = `bill_id, vendor_id, number, doc_date, amount, expense_account_id, status, issue_entry_id, payment_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var bill domain.Bill
	err := row.Scan(
		&bill.BillID,
		&bill.VendorID,
		&bill.Number,
		&bill.Date,
		&bill.Amount,
		&bill.ExpenseAccountID,
		&bill.Status,
		&bill.IssueEntryID,
		&bill.PaymentEntryID,
		&bill.CreatedAt,
		&bill.CreatedBy,
		&bill.LastUpdatedAt,
		&bill.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *BillingRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		bill.BillID,
		bill.VendorID,
		bill.Number,
		bill.Date,
		bill.Amount,
		bill.ExpenseAccountID,
		bill.Status,
		bill.IssueEntryID,
		bill.PaymentEntryID,
		bill.CreatedAt,
		bill.CreatedBy,
		bill.LastUpdatedAt,
		bill.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}
	return nil
}

func (r *BillingRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1;`
	bill, err := scanBill(r.pool.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	return bill, nil
}

func (r *BillingRepository) ListBills(ctx context.Context, status *domain.DocumentStatus) ([]domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY doc_date DESC, created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

func (r *BillingRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	query := `
		UPDATE bills
		SET status = $1, payment_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bill_id = $5;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		bill.Status,
		bill.PaymentEntryID,
		bill.LastUpdatedAt,
		bill.LastUpdatedBy,
		bill.BillID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
