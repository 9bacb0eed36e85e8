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
	"github.com/restobook/restobook/internal/utils/accounting"
)

var (
	ErrNoLines          = errors.New("journal entry must have at least one line")
	ErrUnbalancedEntry  = errors.New("journal entry debits and credits do not balance")
	ErrNegativeAmount   = errors.New("journal line amounts must not be negative")
	ErrOrderNotPostable = errors.New("order has no positive amount to post")
)

// accountingService implements the journal entry validator and writer, the
// sales posting rule, and the derived statements. Statements read a fresh
// full snapshot from the ledger store on every call.
type accountingService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewAccountingService creates a new AccountingService.
func NewAccountingService(ledgerRepo portsrepo.LedgerRepository) portssvc.AccountingService {
	return &accountingService{ledgerRepo: ledgerRepo}
}

var _ portssvc.AccountingService = (*accountingService)(nil)

// CreateJournalEntry validates a candidate entry and appends it to the
// ledger. Balance is checked against the tolerance before totals are stored;
// a rejected entry leaves the store untouched.
func (s *accountingService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, ErrNoLines
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if lineReq.Debit.IsNegative() || lineReq.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: account %s", ErrNegativeAmount, lineReq.AccountID)
		}
		lines[i] = domain.JournalLine{
			AccountID: lineReq.AccountID,
			Debit:     lineReq.Debit,
			Credit:    lineReq.Credit,
		}
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: debits %s, credits %s",
			ErrUnbalancedEntry, totalDebit.String(), totalCredit.String())
	}

	now := time.Now().UTC()

	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	refType := req.RefType
	if refType == "" {
		refType = domain.RefManual
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		Date:        date,
		Memo:        req.Memo,
		Lines:       lines,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		RefType:     refType,
		RefID:       req.RefID,
		RefText:     req.RefText,
		CreatedAt:   now,
	}

	if err := s.ledgerRepo.AppendEntry(ctx, entry); err != nil {
		logger.Error("Failed to append journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStoreWrite, err.Error())
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("ref_type", string(entry.RefType)),
		slog.String("total_debit", totalDebit.String()))
	return &entry, nil
}

// PostSalesEntry builds and writes the journal entry for a completed order.
// The gross amount debits the cash or bank role depending on payment method;
// the net sales amount credits the sales role, and the tax portion credits
// the VAT output role when positive.
func (s *accountingService) PostSalesEntry(ctx context.Context, order domain.Order, roles domain.AccountRoleMap) (*domain.JournalEntry, error) {
	roles = roles.Normalized()

	gross := order.GrossAmount()
	if !gross.IsPositive() {
		return nil, fmt.Errorf("%w: order %s", ErrOrderNotPostable, order.OrderID)
	}
	tax := order.TaxAmount
	sales := gross.Sub(tax)

	debitAccount := roles.Bank
	if order.PaymentMethod == domain.PayCash {
		debitAccount = roles.Cash
	}

	lines := []dto.CreateJournalLineRequest{
		{AccountID: debitAccount, Debit: gross, Credit: decimal.Zero},
		{AccountID: roles.Sales, Debit: decimal.Zero, Credit: sales},
	}
	if tax.IsPositive() {
		lines = append(lines, dto.CreateJournalLineRequest{AccountID: roles.VATOutput, Debit: decimal.Zero, Credit: tax})
	}

	return s.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		Memo:    fmt.Sprintf("Sales - table %s", order.Table),
		Lines:   lines,
		RefType: domain.RefOrder,
		RefID:   order.OrderID,
		RefText: fmt.Sprintf("Table %s", order.Table),
	})
}

// ListJournalEntries returns every stored entry, newest first.
func (s *accountingService) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

// GetJournalEntry retrieves a single entry by id.
func (s *accountingService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// AccountBalances folds the full ledger into per-account balances.
func (s *accountingService) AccountBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for balances: %w", err)
	}
	return accounting.AccountBalances(entries), nil
}

// BalanceSheet derives the balance sheet from a fresh ledger snapshot.
func (s *accountingService) BalanceSheet(ctx context.Context, roles domain.AccountRoleMap) (*domain.BalanceSheet, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for balance sheet: %w", err)
	}
	sheet := accounting.BuildBalanceSheet(accounting.AccountBalances(entries), roles)
	return &sheet, nil
}

// CashFlow derives the direct-method cash flow statement from a fresh
// ledger snapshot.
func (s *accountingService) CashFlow(ctx context.Context, roles domain.AccountRoleMap) (*domain.CashFlowStatement, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for cash flow: %w", err)
	}
	flow := accounting.CashFlow(entries, roles)
	return &flow, nil
}
