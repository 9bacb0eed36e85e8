package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

var (
	ErrDocumentNotOpen = errors.New("document is not open")
	ErrWrongPartyKind  = errors.New("party has the wrong kind for this document")
	ErrNonPositiveDoc  = errors.New("document amount must be positive")
)

// billingService manages invoices and bills. Issuing and paying a document
// each post one journal entry; the stored entry ids guard against reposting.
type billingService struct {
	billingRepo portsrepo.BillingRepository
	partyRepo   portsrepo.PartyRepository
	accounting  portssvc.AccountingService
}

// NewBillingService creates a new BillingService.
func NewBillingService(billingRepo portsrepo.BillingRepository, partyRepo portsrepo.PartyRepository, accounting portssvc.AccountingService) portssvc.BillingService {
	return &billingService{
		billingRepo: billingRepo,
		partyRepo:   partyRepo,
		accounting:  accounting,
	}
}

var _ portssvc.BillingService = (*billingService)(nil)

func (s *billingService) requireParty(ctx context.Context, partyID string, kind domain.PartyKind) error {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return err
	}
	if party.Kind != kind {
		return fmt.Errorf("%w: %s is %s, expected %s", ErrWrongPartyKind, partyID, party.Kind, kind)
	}
	return nil
}

// settlementAccount maps the payment method to the cash or bank role.
func settlementAccount(method domain.PaymentMethod, roles domain.AccountRoleMap) string {
	if method == domain.PayCash {
		return roles.Cash
	}
	return roles.Bank
}

// CreateInvoice records a customer invoice and posts the receivable: AR is
// debited with the gross, sales credited with the net, VAT output credited
// with the tax when positive.
func (s *billingService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, roles domain.AccountRoleMap, creatorID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	roles = roles.Normalized()

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveDoc, req.Amount.String())
	}
	if req.TaxAmount.IsNegative() {
		return nil, fmt.Errorf("%w: tax must not be negative", apperrors.ErrValidation)
	}
	if err := s.requireParty(ctx, req.CustomerID, domain.PartyCustomer); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	invoice := domain.Invoice{
		InvoiceID:  uuid.NewString(),
		CustomerID: req.CustomerID,
		Number:     req.Number,
		Date:       date,
		Amount:     req.Amount,
		TaxAmount:  req.TaxAmount,
		Status:     domain.DocOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	lines := []dto.CreateJournalLineRequest{
		{AccountID: roles.AR, Debit: invoice.Gross(), Credit: decimal.Zero},
		{AccountID: roles.Sales, Debit: decimal.Zero, Credit: invoice.Amount},
	}
	if invoice.TaxAmount.IsPositive() {
		lines = append(lines, dto.CreateJournalLineRequest{AccountID: roles.VATOutput, Debit: decimal.Zero, Credit: invoice.TaxAmount})
	}

	entry, err := s.accounting.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		Date:    date,
		Memo:    fmt.Sprintf("Invoice %s", invoice.Number),
		Lines:   lines,
		RefType: domain.RefInvoice,
		RefID:   invoice.InvoiceID,
		RefText: fmt.Sprintf("Invoice %s", invoice.Number),
	})
	if err != nil {
		logger.Error("Failed to post invoice issue entry", slog.String("error", err.Error()), slog.String("invoice_number", invoice.Number))
		return nil, fmt.Errorf("failed to post invoice: %w", err)
	}
	invoice.IssueEntryID = entry.EntryID

	if err := s.billingRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("entry_id", entry.EntryID))
	return &invoice, nil
}

// PayInvoice settles an open invoice: cash or bank is debited with the
// gross, AR credited. The invoice transitions to PAID only after both the
// posting and the update succeed.
func (s *billingService) PayInvoice(ctx context.Context, invoiceID string, req dto.PayDocumentRequest, roles domain.AccountRoleMap, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	roles = roles.Normalized()

	invoice, err := s.billingRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.DocOpen {
		return nil, fmt.Errorf("%w: invoice %s is %s", ErrDocumentNotOpen, invoiceID, invoice.Status)
	}

	entry, err := s.accounting.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		Memo: fmt.Sprintf("Payment for invoice %s", invoice.Number),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: settlementAccount(req.PaymentMethod, roles), Debit: invoice.Gross(), Credit: decimal.Zero},
			{AccountID: roles.AR, Debit: decimal.Zero, Credit: invoice.Gross()},
		},
		RefType: domain.RefPayment,
		RefID:   invoice.InvoiceID,
		RefText: fmt.Sprintf("Invoice %s", invoice.Number),
	})
	if err != nil {
		logger.Error("Failed to post invoice payment entry", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to post invoice payment: %w", err)
	}

	now := time.Now().UTC()
	invoice.Status = domain.DocPaid
	invoice.PaymentEntryID = entry.EntryID
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	if err := s.billingRepo.UpdateInvoice(ctx, *invoice); err != nil {
		logger.Error("Failed to save paid invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to save paid invoice: %w", err)
	}

	logger.Info("Invoice paid", slog.String("invoice_id", invoiceID), slog.String("entry_id", entry.EntryID))
	return invoice, nil
}

// ListInvoices returns invoices, optionally filtered by status.
func (s *billingService) ListInvoices(ctx context.Context, status *domain.DocumentStatus) ([]domain.Invoice, error) {
	invoices, err := s.billingRepo.ListInvoices(ctx, status)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list invoices", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// CreateBill records a vendor bill and posts the payable: the chosen
// expense account is debited, AP credited.
func (s *billingService) CreateBill(ctx context.Context, req dto.CreateBillRequest, roles domain.AccountRoleMap, creatorID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	roles = roles.Normalized()

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveDoc, req.Amount.String())
	}
	if err := s.requireParty(ctx, req.VendorID, domain.PartyVendor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	bill := domain.Bill{
		BillID:           uuid.NewString(),
		VendorID:         req.VendorID,
		Number:           req.Number,
		Date:             date,
		Amount:           req.Amount,
		ExpenseAccountID: req.ExpenseAccountID,
		Status:           domain.DocOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	entry, err := s.accounting.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		Date: date,
		Memo: fmt.Sprintf("Bill %s", bill.Number),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: bill.ExpenseAccountID, Debit: bill.Amount, Credit: decimal.Zero},
			{AccountID: roles.AP, Debit: decimal.Zero, Credit: bill.Amount},
		},
		RefType: domain.RefBill,
		RefID:   bill.BillID,
		RefText: fmt.Sprintf("Bill %s", bill.Number),
	})
	if err != nil {
		logger.Error("Failed to post bill entry", slog.String("error", err.Error()), slog.String("bill_number", bill.Number))
		return nil, fmt.Errorf("failed to post bill: %w", err)
	}
	bill.IssueEntryID = entry.EntryID

	if err := s.billingRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", slog.String("error", err.Error()), slog.String("bill_id", bill.BillID))
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID), slog.String("entry_id", entry.EntryID))
	return &bill, nil
}

// PayBill settles an open bill: AP is debited, cash or bank credited.
func (s *billingService) PayBill(ctx context.Context, billID string, req dto.PayDocumentRequest, roles domain.AccountRoleMap, userID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	roles = roles.Normalized()

	bill, err := s.billingRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.Status != domain.DocOpen {
		return nil, fmt.Errorf("%w: bill %s is %s", ErrDocumentNotOpen, billID, bill.Status)
	}

	entry, err := s.accounting.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		Memo: fmt.Sprintf("Payment for bill %s", bill.Number),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: roles.AP, Debit: bill.Amount, Credit: decimal.Zero},
			{AccountID: settlementAccount(req.PaymentMethod, roles), Debit: decimal.Zero, Credit: bill.Amount},
		},
		RefType: domain.RefPayment,
		RefID:   bill.BillID,
		RefText: fmt.Sprintf("Bill %s", bill.Number),
	})
	if err != nil {
		logger.Error("Failed to post bill payment entry", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to post bill payment: %w", err)
	}

	now := time.Now().UTC()
	bill.Status = domain.DocPaid
	bill.PaymentEntryID = entry.EntryID
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	if err := s.billingRepo.UpdateBill(ctx, *bill); err != nil {
		logger.Error("Failed to save paid bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to save paid bill: %w", err)
	}

	logger.Info("Bill paid", slog.String("bill_id", billID), slog.String("entry_id", entry.EntryID))
	return bill, nil
}

// ListBills returns bills, optionally filtered by status.
func (s *billingService) ListBills(ctx context.Context, status *domain.DocumentStatus) ([]domain.Bill, error) {
	bills, err := s.billingRepo.ListBills(ctx, status)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list bills", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}
