package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
)

// MenuRepository persists the restaurant menu.
type MenuRepository interface {
	SaveMenuItem(ctx context.Context, item domain.MenuItem) error
	FindMenuItemByID(ctx context.Context, menuItemID string) (*domain.MenuItem, error)
	FindMenuItemsByIDs(ctx context.Context, menuItemIDs []string) (map[string]domain.MenuItem, error)
	ListMenuItems(ctx context.Context, includeInactive bool) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item domain.MenuItem) error
}

// OrderRepository persists table orders and their items.
type OrderRepository interface {
	SaveOrder(ctx context.Context, order domain.Order) error
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus, limit int) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order) error
}

// InventoryRepository persists stock items and usage records.
type InventoryRepository interface {
	SaveItem(ctx context.Context, item domain.InventoryItem) error
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	UpdateItemQuantity(ctx context.Context, itemID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error
	SaveUsage(ctx context.Context, usage domain.UsageRecord) error
	ListUsage(ctx context.Context, from, to time.Time) ([]domain.UsageRecord, error)
}

// PartyRepository persists vendors and customers.
type PartyRepository interface {
	SaveParty(ctx context.Context, party domain.Party) error
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error)
	UpdateParty(ctx context.Context, party domain.Party) error
}

// BillingRepository persists invoices and bills.
type BillingRepository interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, status *domain.DocumentStatus) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	SaveBill(ctx context.Context, bill domain.Bill) error
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)
	ListBills(ctx context.Context, status *domain.DocumentStatus) ([]domain.Bill, error)
	UpdateBill(ctx context.Context, bill domain.Bill) error
}

// StaffRepository persists staff users.
type StaffRepository interface {
	SaveStaff(ctx context.Context, user domain.StaffUser) error
	FindStaffByID(ctx context.Context, userID string) (*domain.StaffUser, error)
	FindStaffByName(ctx context.Context, name string) (*domain.StaffUser, error)
	FindStaffByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
	ListStaff(ctx context.Context) ([]domain.StaffUser, error)
	UpdateStaff(ctx context.Context, user domain.StaffUser) error
}
