package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/restobook/restobook/internal/core/domain"
	"github.com/restobook/restobook/internal/dto"
)

// AccountingService is the ledger core: the journal entry validator and
// writer, the sales posting rule, and the derived statements. Statement
// methods read an independent full snapshot from the ledger store on each
// call; nothing is cached between calls.
type AccountingService interface {
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)
	PostSalesEntry(ctx context.Context, order domain.Order, roles domain.AccountRoleMap) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error)
	GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	AccountBalances(ctx context.Context) (map[string]decimal.Decimal, error)
	BalanceSheet(ctx context.Context, roles domain.AccountRoleMap) (*domain.BalanceSheet, error)
	CashFlow(ctx context.Context, roles domain.AccountRoleMap) (*domain.CashFlowStatement, error)
}

// MenuService manages the menu.
type MenuService interface {
	CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest, creatorID string) (*domain.MenuItem, error)
	GetMenuItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, includeInactive bool) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, menuItemID string, req dto.UpdateMenuItemRequest, updaterID string) (*domain.MenuItem, error)
}

// OrderService manages the order lifecycle, including the completion
// transition that posts the order to the ledger.
type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorID string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus, limit int) ([]domain.Order, error)
	CompleteOrder(ctx context.Context, orderID string, req dto.CompleteOrderRequest, userID string) (*domain.Order, error)
	VoidOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error)
}

// InventoryService manages stock and usage records.
type InventoryService interface {
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorID string) (*domain.InventoryItem, error)
	GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	AdjustItem(ctx context.Context, itemID string, req dto.AdjustInventoryRequest, userID string) (*domain.InventoryItem, error)
	RecordUsage(ctx context.Context, req dto.RecordUsageRequest, userID string) (*domain.UsageRecord, error)
	ListUsage(ctx context.Context, from, to time.Time) ([]domain.UsageRecord, error)
	LowStockItems(ctx context.Context) ([]domain.InventoryItem, error)
}

// PartyService manages vendors and customers.
type PartyService interface {
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorID string) (*domain.Party, error)
	GetParty(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error)
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, updaterID string) (*domain.Party, error)
}

// BillingService manages invoices and bills and their ledger postings.
type BillingService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, roles domain.AccountRoleMap, creatorID string) (*domain.Invoice, error)
	PayInvoice(ctx context.Context, invoiceID string, req dto.PayDocumentRequest, roles domain.AccountRoleMap, userID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, status *domain.DocumentStatus) ([]domain.Invoice, error)
	CreateBill(ctx context.Context, req dto.CreateBillRequest, roles domain.AccountRoleMap, creatorID string) (*domain.Bill, error)
	PayBill(ctx context.Context, billID string, req dto.PayDocumentRequest, roles domain.AccountRoleMap, userID string) (*domain.Bill, error)
	ListBills(ctx context.Context, status *domain.DocumentStatus) ([]domain.Bill, error)
}

// AuthService handles staff PIN login and staff management.
type AuthService interface {
	LoginWithPIN(ctx context.Context, name, pin string) (*domain.StaffUser, string, time.Time, error)
	LoginWithGoogleEmail(ctx context.Context, email string) (*domain.StaffUser, string, time.Time, error)
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest, creatorID string) (*domain.StaffUser, error)
	GetStaff(ctx context.Context, userID string) (*domain.StaffUser, error)
	ListStaff(ctx context.Context) ([]domain.StaffUser, error)
	UpdateStaff(ctx context.Context, userID string, req dto.UpdateStaffRequest, updaterID string) (*domain.StaffUser, error)
}

// GoogleOAuthService wraps the Google OAuth code exchange used by the
// back-office sign-in flow.
type GoogleOAuthService interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// ServiceContainer bundles every service for route registration.
type ServiceContainer struct {
	Accounting  AccountingService
	Menu        MenuService
	Order       OrderService
	Inventory   InventoryService
	Party       PartyService
	Billing     BillingService
	Auth        AuthService
	GoogleOAuth GoogleOAuthService
}
