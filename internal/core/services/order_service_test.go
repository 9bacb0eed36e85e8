package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
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

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepository = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, status *domain.OrderStatus, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// --- Mock MenuRepository ---
type MockMenuRepository struct {
	mock.Mock
}

var _ portsrepo.MenuRepository = (*MockMenuRepository)(nil)

func (m *MockMenuRepository) SaveMenuItem(ctx context.Context, item domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuRepository) FindMenuItemByID(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) FindMenuItemsByIDs(ctx context.Context, menuItemIDs []string) (map[string]domain.MenuItem, error) {
	args := m.Called(ctx, menuItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) ListMenuItems(ctx context.Context, includeInactive bool) ([]domain.MenuItem, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// --- Mock AccountingService (as used by OrderService and BillingService) ---
type MockAccountingService struct {
	mock.Mock
}

var _ portssvc.AccountingService = (*MockAccountingService)(nil)

func (m *MockAccountingService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockAccountingService) PostSalesEntry(ctx context.Context, order domain.Order, roles domain.AccountRoleMap) (*domain.JournalEntry, error) {
	args := m.Called(ctx, order, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockAccountingService) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockAccountingService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockAccountingService) AccountBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockAccountingService) BalanceSheet(ctx context.Context, roles domain.AccountRoleMap) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockAccountingService) CashFlow(ctx context.Context, roles domain.AccountRoleMap) (*domain.CashFlowStatement, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowStatement), args.Error(1)
}

// --- Test Suite Setup ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo *MockOrderRepository
	mockMenuRepo  *MockMenuRepository
	mockAcctSvc   *MockAccountingService
	service       portssvc.OrderService
	userID        string
	burger        domain.MenuItem
	fries         domain.MenuItem
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockMenuRepo = new(MockMenuRepository)
	suite.mockAcctSvc = new(MockAccountingService)
	suite.service = services.NewOrderService(
		suite.mockOrderRepo,
		suite.mockMenuRepo,
		suite.mockAcctSvc,
		decimal.RequireFromString("0.16"),
		domain.AccountRoleMap{},
	)

	suite.userID = uuid.NewString()
	suite.burger = domain.MenuItem{
		MenuItemID: uuid.NewString(),
		Name:       "Burger",
		Price:      decimal.RequireFromString("12.50"),
		IsActive:   true,
	}
	suite.fries = domain.MenuItem{
		MenuItemID: uuid.NewString(),
		Name:       "Fries",
		Price:      decimal.RequireFromString("4.00"),
		IsActive:   true,
	}
}

func (suite *OrderServiceTestSuite) menuMap(items ...domain.MenuItem) map[string]domain.MenuItem {
	m := make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		m[item.MenuItemID] = item
	}
	return m
}

// --- CreateOrder ---

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Table: "7",
		Items: []dto.CreateOrderItemRequest{
			{MenuItemID: suite.burger.MenuItemID, Quantity: 2},
			{MenuItemID: suite.fries.MenuItemID, Quantity: 1},
		},
	}

	suite.mockMenuRepo.On("FindMenuItemsByIDs", ctx, []string{suite.burger.MenuItemID, suite.fries.MenuItemID}).
		Return(suite.menuMap(suite.burger, suite.fries), nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	order, err := suite.service.CreateOrder(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.Equal(domain.OrderOpen, order.Status)
	suite.Equal("7", order.Table)
	suite.True(order.Total.Equal(decimal.RequireFromString("29")), "2x12.50 + 1x4.00")
	suite.True(order.TaxAmount.Equal(decimal.RequireFromString("4.64")), "16% VAT rounded to cents")
	suite.True(order.TotalWithTax.Equal(decimal.RequireFromString("33.64")))
	suite.Empty(order.LedgerEntryID)
	suite.Equal(suite.userID, order.CreatedBy)

	// Prices are captured at order time.
	suite.Require().Len(order.Items, 2)
	suite.True(order.Items[0].UnitPrice.Equal(suite.burger.Price))

	suite.mockMenuRepo.AssertExpectations(suite.T())
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownMenuItem() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		Table: "7",
		Items: []dto.CreateOrderItemRequest{{MenuItemID: "missing", Quantity: 1}},
	}

	suite.mockMenuRepo.On("FindMenuItemsByIDs", ctx, []string{"missing"}).
		Return(map[string]domain.MenuItem{}, nil).Once()

	order, err := suite.service.CreateOrder(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(order)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InactiveMenuItem() {
	ctx := context.Background()
	retired := suite.burger
	retired.IsActive = false
	req := dto.CreateOrderRequest{
		Table: "7",
		Items: []dto.CreateOrderItemRequest{{MenuItemID: retired.MenuItemID, Quantity: 1}},
	}

	suite.mockMenuRepo.On("FindMenuItemsByIDs", ctx, []string{retired.MenuItemID}).
		Return(suite.menuMap(retired), nil).Once()

	order, err := suite.service.CreateOrder(ctx, req, suite.userID)

	suite.Require().ErrorIs(err, services.ErrMenuItemInactive)
	suite.Nil(order)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

// --- CompleteOrder ---

func (suite *OrderServiceTestSuite) openOrder() *domain.Order {
	total := decimal.RequireFromString("29")
	tax := decimal.RequireFromString("4.64")
	return &domain.Order{
		OrderID:      uuid.NewString(),
		Table:        "7",
		Status:       domain.OrderOpen,
		Total:        total,
		TaxAmount:    tax,
		TotalWithTax: total.Add(tax),
	}
}

func (suite *OrderServiceTestSuite) TestCompleteOrder_PostsExactlyOnce() {
	ctx := context.Background()
	order := suite.openOrder()
	entry := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockAcctSvc.On("PostSalesEntry", ctx, mock.AnythingOfType("domain.Order"), mock.AnythingOfType("domain.AccountRoleMap")).
		Return(entry, nil).Once()

	var updated domain.Order
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("domain.Order")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Order) }).
		Return(nil).Once()

	completed, err := suite.service.CompleteOrder(ctx, order.OrderID, dto.CompleteOrderRequest{PaymentMethod: domain.PayCash}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderCompleted, completed.Status)
	suite.Equal(entry.EntryID, completed.LedgerEntryID)
	suite.Equal(domain.PayCash, completed.PaymentMethod)
	suite.Equal(entry.EntryID, updated.LedgerEntryID)
	suite.Equal(suite.userID, updated.LastUpdatedBy)

	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockAcctSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCompleteOrder_NotOpen() {
	ctx := context.Background()
	order := suite.openOrder()
	order.Status = domain.OrderCompleted

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	completed, err := suite.service.CompleteOrder(ctx, order.OrderID, dto.CompleteOrderRequest{PaymentMethod: domain.PayCard}, suite.userID)

	suite.Require().ErrorIs(err, services.ErrOrderNotOpen)
	suite.Nil(completed)
	suite.mockAcctSvc.AssertNotCalled(suite.T(), "PostSalesEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCompleteOrder_AlreadyPosted() {
	ctx := context.Background()
	order := suite.openOrder()
	order.LedgerEntryID = uuid.NewString()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	completed, err := suite.service.CompleteOrder(ctx, order.OrderID, dto.CompleteOrderRequest{PaymentMethod: domain.PayCard}, suite.userID)

	suite.Require().ErrorIs(err, services.ErrOrderAlreadyPosted)
	suite.Nil(completed)
	suite.mockAcctSvc.AssertNotCalled(suite.T(), "PostSalesEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCompleteOrder_PostingFailureLeavesOrderOpen() {
	ctx := context.Background()
	order := suite.openOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockAcctSvc.On("PostSalesEntry", ctx, mock.AnythingOfType("domain.Order"), mock.AnythingOfType("domain.AccountRoleMap")).
		Return(nil, errors.New("ledger unavailable")).Once()

	completed, err := suite.service.CompleteOrder(ctx, order.OrderID, dto.CompleteOrderRequest{PaymentMethod: domain.PayIBAN}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(completed)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

// --- VoidOrder ---

func (suite *OrderServiceTestSuite) TestVoidOrder_Success() {
	ctx := context.Background()
	order := suite.openOrder()

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()

	voided, err := suite.service.VoidOrder(ctx, order.OrderID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderVoid, voided.Status)
	suite.Empty(voided.LedgerEntryID, "voided orders never reach the ledger")
	suite.mockAcctSvc.AssertNotCalled(suite.T(), "PostSalesEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestVoidOrder_NotOpen() {
	ctx := context.Background()
	order := suite.openOrder()
	order.Status = domain.OrderVoid

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	voided, err := suite.service.VoidOrder(ctx, order.OrderID, suite.userID)

	suite.Require().ErrorIs(err, services.ErrOrderNotOpen)
	suite.Nil(voided)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrder", mock.Anything, mock.Anything)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
