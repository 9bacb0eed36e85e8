package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/handlers"
	"github.com/restobook/restobook/internal/platform/config"
	"github.com/restobook/restobook/internal/utils"
)

// --- Mock AccountingService ---
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

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockAcctSvc *MockAccountingService
	jwtSecret   string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockAcctSvc = new(MockAccountingService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // No swagger routes under test
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Accounting: suite.mockAcctSvc,
	})
}

func (suite *JournalHandlerTestSuite) generateTestToken(role string) string {
	token, err := utils.GenerateJWT(uuid.NewString(), role, suite.jwtSecret, time.Hour, "restobook-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *JournalHandlerTestSuite) doRequest(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func validEntryRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Memo: "Owner capital",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: "cash", Debit: decimal.NewFromInt(500)},
			{AccountID: "equity", Credit: decimal.NewFromInt(500)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateJournalEntry_Success() {
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		Date:        "2026-08-31",
		Memo:        "Owner capital",
		TotalDebit:  decimal.NewFromInt(500),
		TotalCredit: decimal.NewFromInt(500),
		RefType:     domain.RefManual,
	}
	suite.mockAcctSvc.On("CreateJournalEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(entry, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal", suite.generateTestToken("ADMIN"), validEntryRequest())

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.mockAcctSvc.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateJournalEntry_Unbalanced() {
	suite.mockAcctSvc.On("CreateJournalEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(nil, services.ErrUnbalancedEntry).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal", suite.generateTestToken("ADMIN"), validEntryRequest())

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreateJournalEntry_MissingToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/journal", "", validEntryRequest())

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAcctSvc.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateJournalEntry_CashierForbidden() {
	w := suite.doRequest(http.MethodPost, "/api/v1/journal", suite.generateTestToken("CASHIER"), validEntryRequest())

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAcctSvc.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestGetJournalEntry_NotFound() {
	suite.mockAcctSvc.On("GetJournalEntry", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journal/missing", suite.generateTestToken("ADMIN"), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListJournalEntries_Success() {
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), RefType: domain.RefOrder},
		{EntryID: uuid.NewString(), RefType: domain.RefManual},
	}
	suite.mockAcctSvc.On("ListJournalEntries", mock.Anything).Return(entries, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journal", suite.generateTestToken("ADMIN"), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
}

func (suite *JournalHandlerTestSuite) TestCashFlowReport_Success() {
	flow := &domain.CashFlowStatement{
		Inflow:  decimal.NewFromInt(300),
		Outflow: decimal.NewFromInt(120),
		Net:     decimal.NewFromInt(180),
	}
	suite.mockAcctSvc.On("CashFlow", mock.Anything, mock.AnythingOfType("domain.AccountRoleMap")).
		Return(flow, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/cash-flow", suite.generateTestToken("ADMIN"), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAcctSvc.AssertExpectations(suite.T())
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
