package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

var ErrNegativePrice = errors.New("menu item price must not be negative")

type menuService struct {
	menuRepo portsrepo.MenuRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(menuRepo portsrepo.MenuRepository) portssvc.MenuService {
	return &menuService{menuRepo: menuRepo}
}

var _ portssvc.MenuService = (*menuService)(nil)

// CreateMenuItem adds a new active item to the menu.
func (s *menuService) CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest, creatorID string) (*domain.MenuItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativePrice, req.Price.String())
	}

	now := time.Now().UTC()
	item := domain.MenuItem{
		MenuItemID: uuid.NewString(),
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.menuRepo.SaveMenuItem(ctx, item); err != nil {
		logger.Error("Failed to save menu item", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save menu item: %w", err)
	}

	logger.Info("Menu item created", slog.String("menu_item_id", item.MenuItemID), slog.String("name", item.Name))
	return &item, nil
}

// GetMenuItem retrieves a menu item by id.
func (s *menuService) GetMenuItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	item, err := s.menuRepo.FindMenuItemByID(ctx, menuItemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find menu item", slog.String("error", err.Error()), slog.String("menu_item_id", menuItemID))
		}
		return nil, err
	}
	return item, nil
}

// ListMenuItems returns the menu, optionally including retired items.
func (s *menuService) ListMenuItems(ctx context.Context, includeInactive bool) ([]domain.MenuItem, error) {
	items, err := s.menuRepo.ListMenuItems(ctx, includeInactive)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list menu items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// UpdateMenuItem applies the non-nil fields of the request. Price changes
// affect future orders only; existing orders keep their captured prices.
func (s *menuService) UpdateMenuItem(ctx context.Context, menuItemID string, req dto.UpdateMenuItemRequest, updaterID string) (*domain.MenuItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.menuRepo.FindMenuItemByID(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		item.Name = *req.Name
		updated = true
	}
	if req.Category != nil {
		item.Category = *req.Category
		updated = true
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrNegativePrice, req.Price.String())
		}
		item.Price = *req.Price
		updated = true
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return item, nil
	}

	item.LastUpdatedAt = time.Now().UTC()
	item.LastUpdatedBy = updaterID

	if err := s.menuRepo.UpdateMenuItem(ctx, *item); err != nil {
		logger.Error("Failed to update menu item", slog.String("error", err.Error()), slog.String("menu_item_id", menuItemID))
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	logger.Info("Menu item updated", slog.String("menu_item_id", menuItemID))
	return item, nil
}
