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
	ErrOrderNotOpen       = errors.New("order is not open")
	ErrOrderAlreadyPosted = errors.New("order has already been posted to the ledger")
	ErrMenuItemInactive   = errors.New("menu item is inactive")
)

// orderService manages the table order lifecycle. Completing an order posts
// it to the ledger exactly once; the stored ledger entry id is the guard.
type orderService struct {
	orderRepo  portsrepo.OrderRepository
	menuRepo   portsrepo.MenuRepository
	accounting portssvc.AccountingService
	vatRate    decimal.Decimal
	roles      domain.AccountRoleMap
}

// NewOrderService creates a new OrderService. vatRate is the fraction
// applied on top of the pre-tax total (0.16 = 16%).
func NewOrderService(orderRepo portsrepo.OrderRepository, menuRepo portsrepo.MenuRepository, accounting portssvc.AccountingService, vatRate decimal.Decimal, roles domain.AccountRoleMap) portssvc.OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		menuRepo:   menuRepo,
		accounting: accounting,
		vatRate:    vatRate,
		roles:      roles.Normalized(),
	}
}

var _ portssvc.OrderService = (*orderService)(nil)

// CreateOrder opens a new order, pricing each line from the current menu so
// later menu edits do not change it.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, creatorID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	menuItemIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		menuItemIDs[i] = item.MenuItemID
	}

	menuItems, err := s.menuRepo.FindMenuItemsByIDs(ctx, menuItemIDs)
	if err != nil {
		logger.Error("Failed to fetch menu items for order", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch menu items: %w", err)
	}

	items := make([]domain.OrderItem, len(req.Items))
	total := decimal.Zero
	for i, itemReq := range req.Items {
		menuItem, found := menuItems[itemReq.MenuItemID]
		if !found {
			return nil, fmt.Errorf("%w: menu item %s", apperrors.ErrNotFound, itemReq.MenuItemID)
		}
		if !menuItem.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrMenuItemInactive, menuItem.Name)
		}
		items[i] = domain.OrderItem{
			MenuItemID: menuItem.MenuItemID,
			Name:       menuItem.Name,
			UnitPrice:  menuItem.Price,
			Quantity:   itemReq.Quantity,
		}
		total = total.Add(menuItem.Price.Mul(decimal.NewFromInt(int64(itemReq.Quantity))))
	}

	tax := total.Mul(s.vatRate).Round(2)

	now := time.Now().UTC()
	order := domain.Order{
		OrderID:      uuid.NewString(),
		Table:        req.Table,
		Items:        items,
		Status:       domain.OrderOpen,
		Total:        total,
		TaxAmount:    tax,
		TotalWithTax: total.Add(tax),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		logger.Error("Failed to save order", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	logger.Info("Order created", slog.String("order_id", order.OrderID), slog.String("table", order.Table), slog.String("total", total.String()))
	return &order, nil
}

// GetOrder retrieves an order by id.
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}
	return order, nil
}

// ListOrders returns orders, optionally filtered by status, newest first.
func (s *orderService) ListOrders(ctx context.Context, status *domain.OrderStatus, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	orders, err := s.orderRepo.ListOrders(ctx, status, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list orders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// CompleteOrder settles an open order and posts it to the ledger. The
// transition fails, leaving the order open, if the posting fails; an order
// that already carries a ledger entry id is never posted again.
func (s *orderService) CompleteOrder(ctx context.Context, orderID string, req dto.CompleteOrderRequest, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderOpen {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotOpen, orderID, order.Status)
	}
	if order.LedgerEntryID != "" {
		return nil, fmt.Errorf("%w: order %s", ErrOrderAlreadyPosted, orderID)
	}

	order.PaymentMethod = req.PaymentMethod

	entry, err := s.accounting.PostSalesEntry(ctx, *order, s.roles)
	if err != nil {
		logger.Error("Failed to post sales entry for order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to post order to ledger: %w", err)
	}

	now := time.Now().UTC()
	order.Status = domain.OrderCompleted
	order.LedgerEntryID = entry.EntryID
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		logger.Error("Failed to save completed order", slog.String("error", err.Error()), slog.String("order_id", orderID), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save completed order: %w", err)
	}

	logger.Info("Order completed and posted", slog.String("order_id", orderID), slog.String("entry_id", entry.EntryID), slog.String("payment_method", string(req.PaymentMethod)))
	return order, nil
}

// VoidOrder cancels an open order. Voided orders never reach the ledger.
func (s *orderService) VoidOrder(ctx context.Context, orderID string, userID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderOpen {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotOpen, orderID, order.Status)
	}

	now := time.Now().UTC()
	order.Status = domain.OrderVoid
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		logger.Error("Failed to void order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to void order: %w", err)
	}

	logger.Info("Order voided", slog.String("order_id", orderID))
	return order, nil
}
