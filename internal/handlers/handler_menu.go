package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restobook/restobook/internal/apperrors"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

type menuHandler struct {
	menuService portssvc.MenuService
}

func newMenuHandler(menuService portssvc.MenuService) *menuHandler {
	return &menuHandler{menuService: menuService}
}

// createMenuItem godoc
// @Summary Add a menu item
// @Tags menu
// @Accept  json
// @Produce  json
// @Param   item body dto.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} dto.MenuItemResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Failed to create item"
// @Security BearerAuth
// @Router /menu [post]
func (h *menuHandler) createMenuItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, services.ErrNegativePrice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create menu item", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToMenuItemResponse(item))
}

// listMenuItems godoc
// @Summary List menu items
// @Tags menu
// @Produce  json
// @Param   includeInactive query bool false "Include retired items"
// @Success 200 {array} dto.MenuItemResponse
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /menu [get]
func (h *menuHandler) listMenuItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("includeInactive") == "true"

	items, err := h.menuService.ListMenuItems(c.Request.Context(), includeInactive)
	if err != nil {
		logger.Error("Failed to list menu items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list menu items"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMenuItemResponses(items))
}

// getMenuItem godoc
// @Summary Get a menu item
// @Tags menu
// @Produce  json
// @Param   menuItemID path string true "Menu item ID"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve item"
// @Security BearerAuth
// @Router /menu/{menuItemID} [get]
func (h *menuHandler) getMenuItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	menuItemID := c.Param("menuItemID")

	item, err := h.menuService.GetMenuItem(c.Request.Context(), menuItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		logger.Error("Failed to get menu item", slog.String("error", err.Error()), slog.String("menu_item_id", menuItemID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menu item"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMenuItemResponse(item))
}

// updateMenuItem godoc
// @Summary Update a menu item
// @Description Applies the non-nil fields; price changes affect future orders only
// @Tags menu
// @Accept  json
// @Produce  json
// @Param   menuItemID path string true "Menu item ID"
// @Param   item body dto.UpdateMenuItemRequest true "Fields to update"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to update item"
// @Security BearerAuth
// @Router /menu/{menuItemID} [put]
func (h *menuHandler) updateMenuItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	menuItemID := c.Param("menuItemID")

	var req dto.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updaterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), menuItemID, req, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		case errors.Is(err, services.ErrNegativePrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update menu item", slog.String("error", err.Error()), slog.String("menu_item_id", menuItemID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMenuItemResponse(item))
}

// registerMenuRoutes registers the menu routes.
func registerMenuRoutes(group *gin.RouterGroup, menuService portssvc.MenuService) {
	h := newMenuHandler(menuService)

	menu := group.Group("/menu")
	{
		menu.POST("", h.createMenuItem)
		menu.GET("", h.listMenuItems)
		menu.GET("/:menuItemID", h.getMenuItem)
		menu.PUT("/:menuItemID", h.updateMenuItem)
	}
}
