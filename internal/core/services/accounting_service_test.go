package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Test Suite Setup ---
type AccountingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.AccountingService
}

func (suite *AccountingServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountingService(suite.mockLedgerRepo)
}

func lineReq(accountID string, debit, credit decimal.Decimal) dto.CreateJournalLineRequest {
	return dto.CreateJournalLineRequest{AccountID: accountID, Debit: debit, Credit: credit}
}

// --- CreateJournalEntry ---

func (suite *AccountingServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Memo: "Opening float",
		Lines: []dto.CreateJournalLineRequest{
			lineReq("cash", decimal.NewFromInt(100), decimal.Zero),
			lineReq("sales", decimal.Zero, decimal.NewFromInt(100)),
		},
	}

	var stored domain.JournalEntry
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.JournalEntry) }).
		Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal("Opening float", entry.Memo)
	suite.Equal(domain.RefManual, entry.RefType, "ref type defaults to manual")
	suite.Equal(time.Now().UTC().Format("2006-01-02"), entry.Date, "date defaults to today")
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.Equal(entry.EntryID, stored.EntryID)
	suite.Len(stored.Lines, 2)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestCreateJournalEntry_NoLines() {
	ctx := context.Background()

	entry, err := suite.service.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{Memo: "empty"})

	suite.Require().ErrorIs(err, services.ErrNoLines)
	suite.Nil(entry)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestCreateJournalEntry_NegativeAmount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Lines: []dto.CreateJournalLineRequest{
			lineReq("cash", decimal.NewFromInt(-5), decimal.Zero),
			lineReq("sales", decimal.Zero, decimal.NewFromInt(-5)),
		},
	}

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().ErrorIs(err, services.ErrNegativeAmount)
	suite.Nil(entry)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Lines: []dto.CreateJournalLineRequest{
			lineReq("cash", decimal.NewFromInt(100), decimal.Zero),
			lineReq("sales", decimal.Zero, decimal.RequireFromString("100.02")),
		},
	}

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().ErrorIs(err, services.ErrUnbalancedEntry)
	suite.Nil(entry)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *AccountingServiceTestSuite) TestCreateJournalEntry_WithinTolerance() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Lines: []dto.CreateJournalLineRequest{
			lineReq("cash", decimal.NewFromInt(100), decimal.Zero),
			lineReq("sales", decimal.Zero, decimal.RequireFromString("100.01")),
		},
	}

	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.NotNil(entry)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestCreateJournalEntry_StoreFailure() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Lines: []dto.CreateJournalLineRequest{
			lineReq("cash", decimal.NewFromInt(50), decimal.Zero),
			lineReq("sales", decimal.Zero, decimal.NewFromInt(50)),
		},
	}

	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Return(errors.New("connection reset")).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrStoreWrite)
	suite.Nil(entry)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- PostSalesEntry ---

func salesOrder(method domain.PaymentMethod, total, tax string) domain.Order {
	t := decimal.RequireFromString(total)
	x := decimal.RequireFromString(tax)
	return domain.Order{
		OrderID:       "order-1",
		Table:         "5",
		Status:        domain.OrderOpen,
		PaymentMethod: method,
		Total:         t,
		TaxAmount:     x,
		TotalWithTax:  t.Add(x),
	}
}

func (suite *AccountingServiceTestSuite) TestPostSalesEntry_CashWithVAT() {
	ctx := context.Background()
	order := salesOrder(domain.PayCash, "100", "16")

	var stored domain.JournalEntry
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.JournalEntry) }).
		Return(nil).Once()

	entry, err := suite.service.PostSalesEntry(ctx, order, domain.AccountRoleMap{})

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.RefOrder, entry.RefType)
	suite.Equal("order-1", entry.RefID)
	suite.Equal("Sales - table 5", entry.Memo)
	suite.Equal("Table 5", entry.RefText)

	suite.Require().Len(stored.Lines, 3)
	suite.Equal(domain.RoleCash, stored.Lines[0].AccountID, "cash payment debits the cash role")
	suite.True(stored.Lines[0].Debit.Equal(decimal.NewFromInt(116)))
	suite.Equal(domain.RoleSales, stored.Lines[1].AccountID)
	suite.True(stored.Lines[1].Credit.Equal(decimal.NewFromInt(100)))
	suite.Equal(domain.RoleVATOutput, stored.Lines[2].AccountID)
	suite.True(stored.Lines[2].Credit.Equal(decimal.NewFromInt(16)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestPostSalesEntry_CardUsesBankRole() {
	ctx := context.Background()
	order := salesOrder(domain.PayCard, "200", "0")

	var stored domain.JournalEntry
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(domain.JournalEntry) }).
		Return(nil).Once()

	_, err := suite.service.PostSalesEntry(ctx, order, domain.AccountRoleMap{Bank: "1020"})

	suite.Require().NoError(err)
	suite.Require().Len(stored.Lines, 2, "zero tax omits the VAT line")
	suite.Equal("1020", stored.Lines[0].AccountID)
	suite.True(stored.Lines[0].Debit.Equal(decimal.NewFromInt(200)))
	suite.Equal(domain.RoleSales, stored.Lines[1].AccountID)
	suite.True(stored.Lines[1].Credit.Equal(decimal.NewFromInt(200)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestPostSalesEntry_NonPositiveOrder() {
	ctx := context.Background()
	order := salesOrder(domain.PayCash, "0", "0")

	entry, err := suite.service.PostSalesEntry(ctx, order, domain.AccountRoleMap{})

	suite.Require().ErrorIs(err, services.ErrOrderNotPostable)
	suite.Nil(entry)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

// --- Statements ---

func (suite *AccountingServiceTestSuite) TestBalanceSheet_FromSnapshot() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		{Lines: []domain.JournalLine{
			{AccountID: "cash", Debit: decimal.NewFromInt(116), Credit: decimal.Zero},
			{AccountID: "sales", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			{AccountID: "vatOutput", Debit: decimal.Zero, Credit: decimal.NewFromInt(16)},
		}},
	}
	suite.mockLedgerRepo.On("ListEntries", ctx).Return(entries, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, domain.AccountRoleMap{})

	suite.Require().NoError(err)
	suite.True(sheet.TotalAssets.Equal(decimal.NewFromInt(116)))
	suite.True(sheet.TotalLiabilities.Equal(decimal.NewFromInt(16)))
	suite.True(sheet.Equity.Equal(decimal.NewFromInt(100)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestCashFlow_LoadFailure() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("ListEntries", ctx).Return(nil, errors.New("db down")).Once()

	flow, err := suite.service.CashFlow(ctx, domain.AccountRoleMap{})

	suite.Require().Error(err)
	suite.Nil(flow)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountingServiceTestSuite) TestGetJournalEntry_NotFound() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetJournalEntry(ctx, "missing")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(entry)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestAccountingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountingServiceTestSuite))
}
