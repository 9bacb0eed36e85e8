package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

type orderHandler struct {
	orderService portssvc.OrderService
}

func newOrderHandler(orderService portssvc.OrderService) *orderHandler {
	return &orderHandler{orderService: orderService}
}

// createOrder godoc
// @Summary Open a table order
// @Description Prices each line from the current menu and computes VAT
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Menu item not found"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrMenuItemInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders
// @Tags orders
// @Produce  json
// @Param   status query string false "Filter by status (OPEN, COMPLETED, VOID)"
// @Param   limit query int false "Maximum number of orders"
// @Success 200 {array} dto.OrderResponse
// @Failure 500 {object} map[string]string "Failed to list orders"
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.OrderStatus
	if s := c.Query("status"); s != "" {
		st := domain.OrderStatus(s)
		status = &st
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, err := h.orderService.ListOrders(c.Request.Context(), status, limit)
	if err != nil {
		logger.Error("Failed to list orders", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// getOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		logger.Error("Failed to get order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// completeOrder godoc
// @Summary Complete an order
// @Description Settles an open order and posts it to the ledger exactly once
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   payment body dto.CompleteOrderRequest true "Payment method"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order not open or already posted"
// @Failure 500 {object} map[string]string "Failed to complete order"
// @Security BearerAuth
// @Router /orders/{orderID}/complete [post]
func (h *orderHandler) completeOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.CompleteOrder(c.Request.Context(), orderID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrOrderNotOpen), errors.Is(err, services.ErrOrderAlreadyPosted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete order", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// voidOrder godoc
// @Summary Void an open order
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order not open"
// @Failure 500 {object} map[string]string "Failed to void order"
// @Security BearerAuth
// @Router /orders/{orderID}/void [post]
func (h *orderHandler) voidOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.VoidOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, services.ErrOrderNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to void order", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// registerOrderRoutes registers the order routes.
func registerOrderRoutes(group *gin.RouterGroup, orderService portssvc.OrderService) {
	h := newOrderHandler(orderService)

	orders := group.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.POST("/:orderID/complete", h.completeOrder)
		orders.POST("/:orderID/void", h.voidOrder)
	}
}
