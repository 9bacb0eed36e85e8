package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/restobook/restobook/internal/apperrors"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

type inventoryHandler struct {
	inventoryService portssvc.InventoryService
}

func newInventoryHandler(inventoryService portssvc.InventoryService) *inventoryHandler {
	return &inventoryHandler{inventoryService: inventoryService}
}

// createItem godoc
// @Summary Register a stock item
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateInventoryItemRequest true "Stock item"
// @Success 201 {object} domain.InventoryItem
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Failed to create item"
// @Security BearerAuth
// @Router /inventory [post]
func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, services.ErrNegativeQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create inventory item", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// listItems godoc
// @Summary List stock items
// @Tags inventory
// @Produce  json
// @Success 200 {array} domain.InventoryItem
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /inventory [get]
func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.inventoryService.ListItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list inventory items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inventory items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// lowStock godoc
// @Summary List items at or below their low stock threshold
// @Tags inventory
// @Produce  json
// @Success 200 {array} domain.InventoryItem
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /inventory/low-stock [get]
func (h *inventoryHandler) lowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.inventoryService.LowStockItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list low stock items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list low stock items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// adjustItem godoc
// @Summary Adjust a stock item's quantity
// @Description Applies a signed delta; the result must not go negative
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   itemID path string true "Item ID"
// @Param   adjustment body dto.AdjustInventoryRequest true "Signed delta"
// @Success 200 {object} domain.InventoryItem
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to adjust item"
// @Security BearerAuth
// @Router /inventory/{itemID}/adjust [post]
func (h *inventoryHandler) adjustItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	var req dto.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.inventoryService.AdjustItem(c.Request.Context(), itemID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to adjust inventory item", slog.String("error", err.Error()), slog.String("item_id", itemID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust inventory item"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// recordUsage godoc
// @Summary Record stock usage
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   usage body dto.RecordUsageRequest true "Usage"
// @Success 201 {object} domain.UsageRecord
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to record usage"
// @Security BearerAuth
// @Router /inventory/usage [post]
func (h *inventoryHandler) recordUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	usage, err := h.inventoryService.RecordUsage(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record usage", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record usage"})
		}
		return
	}

	c.JSON(http.StatusCreated, usage)
}

// exportUsageCSV godoc
// @Summary Export usage records as CSV
// @Description Streams usage records within [from, to) as a CSV attachment
// @Tags inventory
// @Produce  text/csv
// @Param   from query string false "Start date (YYYY-MM-DD), default 30 days ago"
// @Param   to query string false "End date (YYYY-MM-DD), default tomorrow"
// @Success 200 {string} string "CSV body"
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to export usage"
// @Security BearerAuth
// @Router /inventory/usage/export [get]
func (h *inventoryHandler) exportUsageCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	var err error
	if s := c.Query("from"); s != "" {
		if from, err = time.Parse("2006-01-02", s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
	}
	if s := c.Query("to"); s != "" {
		if to, err = time.Parse("2006-01-02", s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
	}

	records, err := h.inventoryService.ListUsage(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list usage for export", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export usage"})
		return
	}

	filename := fmt.Sprintf("usage_%s.csv", now.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"usage_id", "item_id", "item_name", "quantity", "reason", "used_at", "used_by"})
	for _, record := range records {
		_ = w.Write([]string{
			record.UsageID,
			record.ItemID,
			record.ItemName,
			record.Quantity.String(),
			record.Reason,
			record.UsedAt.Format(time.RFC3339),
			record.UsedBy,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to write usage CSV", slog.String("error", err.Error()))
	}
}

// registerInventoryRoutes registers the inventory routes.
func registerInventoryRoutes(group *gin.RouterGroup, inventoryService portssvc.InventoryService) {
	h := newInventoryHandler(inventoryService)

	inventory := group.Group("/inventory")
	{
		inventory.POST("", h.createItem)
		inventory.GET("", h.listItems)
		inventory.GET("/low-stock", h.lowStock)
		inventory.POST("/:itemID/adjust", h.adjustItem)
		inventory.POST("/usage", h.recordUsage)
		inventory.GET("/usage/export", h.exportUsageCSV)
	}
}
