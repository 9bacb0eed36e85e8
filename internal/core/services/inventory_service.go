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

var (
	ErrNegativeQuantity  = errors.New("quantity must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock for usage")
)

type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository) portssvc.InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

var _ portssvc.InventoryService = (*inventoryService)(nil)

// CreateItem registers a new stock item.
func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest, creatorID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.IsNegative() || req.LowStockLevel.IsNegative() {
		return nil, ErrNegativeQuantity
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:        uuid.NewString(),
		Name:          req.Name,
		Unit:          req.Unit,
		Quantity:      req.Quantity,
		LowStockLevel: req.LowStockLevel,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		logger.Error("Failed to save inventory item", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	logger.Info("Inventory item created", slog.String("item_id", item.ItemID), slog.String("name", item.Name))
	return &item, nil
}

// GetItem retrieves a stock item by id.
func (s *inventoryService) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find inventory item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		}
		return nil, err
	}
	return item, nil
}

// ListItems returns all stock items.
func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListItems(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list inventory items", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// AdjustItem applies a signed delta to an item's quantity (deliveries
// positive, corrections either way). The result must not go negative.
func (s *inventoryService) AdjustItem(ctx context.Context, itemID string, req dto.AdjustInventoryRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	newQuantity := item.Quantity.Add(req.Delta)
	if newQuantity.IsNegative() {
		return nil, fmt.Errorf("%w: %s has %s %s", ErrInsufficientStock, item.Name, item.Quantity.String(), item.Unit)
	}

	now := time.Now().UTC()
	if err := s.inventoryRepo.UpdateItemQuantity(ctx, itemID, req.Delta, userID, now); err != nil {
		logger.Error("Failed to adjust inventory item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to adjust inventory item: %w", err)
	}

	item.Quantity = newQuantity
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	logger.Info("Inventory item adjusted", slog.String("item_id", itemID), slog.String("delta", req.Delta.String()))
	return item, nil
}

// RecordUsage deducts stock and records the reason. Usage must not take the
// item below zero.
func (s *inventoryService) RecordUsage(ctx context.Context, req dto.RecordUsageRequest, userID string) (*domain.UsageRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: usage quantity must be positive", apperrors.ErrValidation)
	}

	item, err := s.inventoryRepo.FindItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Quantity.LessThan(req.Quantity) {
		return nil, fmt.Errorf("%w: %s has %s %s", ErrInsufficientStock, item.Name, item.Quantity.String(), item.Unit)
	}

	now := time.Now().UTC()
	usage := domain.UsageRecord{
		UsageID:  uuid.NewString(),
		ItemID:   item.ItemID,
		ItemName: item.Name,
		Quantity: req.Quantity,
		Reason:   req.Reason,
		UsedAt:   now,
		UsedBy:   userID,
	}

	if err := s.inventoryRepo.UpdateItemQuantity(ctx, item.ItemID, req.Quantity.Neg(), userID, now); err != nil {
		logger.Error("Failed to deduct stock for usage", slog.String("error", err.Error()), slog.String("item_id", item.ItemID))
		return nil, fmt.Errorf("failed to deduct stock: %w", err)
	}
	if err := s.inventoryRepo.SaveUsage(ctx, usage); err != nil {
		logger.Error("Failed to save usage record", slog.String("error", err.Error()), slog.String("item_id", item.ItemID))
		return nil, fmt.Errorf("failed to save usage record: %w", err)
	}

	logger.Info("Usage recorded", slog.String("usage_id", usage.UsageID), slog.String("item_id", item.ItemID), slog.String("quantity", req.Quantity.String()))
	return &usage, nil
}

// ListUsage returns usage records within the half-open interval [from, to).
func (s *inventoryService) ListUsage(ctx context.Context, from, to time.Time) ([]domain.UsageRecord, error) {
	records, err := s.inventoryRepo.ListUsage(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list usage records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list usage records: %w", err)
	}
	return records, nil
}

// LowStockItems returns the items at or below their low stock threshold.
func (s *inventoryService) LowStockItems(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	low := make([]domain.InventoryItem, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}
