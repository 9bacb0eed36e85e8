package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
	"github.com/restobook/restobook/internal/platform/config"
)

type billingHandler struct {
	billingService portssvc.BillingService
	cfg            *config.Config
}

func newBillingHandler(billingService portssvc.BillingService, cfg *config.Config) *billingHandler {
	return &billingHandler{billingService: billingService, cfg: cfg}
}

func documentStatusFilter(c *gin.Context) *domain.DocumentStatus {
	if s := c.Query("status"); s != "" {
		st := domain.DocumentStatus(s)
		return &st
	}
	return nil
}

func (h *billingHandler) writeBillingError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrNonPositiveDoc),
		errors.Is(err, services.ErrWrongPartyKind),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDocumentNotOpen):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": action})
	}
}

// createInvoice godoc
// @Summary Issue a customer invoice
// @Description Records the invoice and posts the receivable to the ledger
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *billingHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.billingService.CreateInvoice(c.Request.Context(), req, h.cfg.AccountRoles, creatorID)
	if err != nil {
		h.writeBillingError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// payInvoice godoc
// @Summary Settle an open invoice
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   payment body dto.PayDocumentRequest true "Payment method"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice not open"
// @Failure 500 {object} map[string]string "Failed to pay invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/pay [post]
func (h *billingHandler) payInvoice(c *gin.Context) {
	var req dto.PayDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.billingService.PayInvoice(c.Request.Context(), c.Param("invoiceID"), req, h.cfg.AccountRoles, userID)
	if err != nil {
		h.writeBillingError(c, err, "Failed to pay invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Tags billing
// @Produce  json
// @Param   status query string false "Filter by status (OPEN, PAID, VOID)"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *billingHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoices, err := h.billingService.ListInvoices(c.Request.Context(), documentStatusFilter(c))
	if err != nil {
		logger.Error("Failed to list invoices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createBill godoc
// @Summary Record a vendor bill
// @Description Records the bill and posts the payable to the ledger
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateBillRequest true "Bill"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 500 {object} map[string]string "Failed to create bill"
// @Security BearerAuth
// @Router /bills [post]
func (h *billingHandler) createBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), req, h.cfg.AccountRoles, creatorID)
	if err != nil {
		h.writeBillingError(c, err, "Failed to create bill")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// payBill godoc
// @Summary Settle an open bill
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   billID path string true "Bill ID"
// @Param   payment body dto.PayDocumentRequest true "Payment method"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Bill not open"
// @Failure 500 {object} map[string]string "Failed to pay bill"
// @Security BearerAuth
// @Router /bills/{billID}/pay [post]
func (h *billingHandler) payBill(c *gin.Context) {
	var req dto.PayDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billingService.PayBill(c.Request.Context(), c.Param("billID"), req, h.cfg.AccountRoles, userID)
	if err != nil {
		h.writeBillingError(c, err, "Failed to pay bill")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills
// @Tags billing
// @Produce  json
// @Param   status query string false "Filter by status (OPEN, PAID, VOID)"
// @Success 200 {array} dto.BillResponse
// @Failure 500 {object} map[string]string "Failed to list bills"
// @Security BearerAuth
// @Router /bills [get]
func (h *billingHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bills, err := h.billingService.ListBills(c.Request.Context(), documentStatusFilter(c))
	if err != nil {
		logger.Error("Failed to list bills", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bills"})
		return
	}

	responses := make([]dto.BillResponse, len(bills))
	for i := range bills {
		responses[i] = dto.ToBillResponse(&bills[i])
	}
	c.JSON(http.StatusOK, responses)
}

// registerBillingRoutes registers the invoice and bill routes.
func registerBillingRoutes(group *gin.RouterGroup, cfg *config.Config, billingService portssvc.BillingService) {
	h := newBillingHandler(billingService, cfg)

	invoices := group.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.POST("/:invoiceID/pay", h.payInvoice)
	}

	bills := group.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.POST("/:billID/pay", h.payBill)
	}
}
