package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
	"github.com/restobook/restobook/internal/platform/config"
)

// reportingHandler serves the derived statements. Every request reads a
// fresh ledger snapshot; nothing is cached.
type reportingHandler struct {
	accountingService portssvc.AccountingService
	cfg               *config.Config
}

func newReportingHandler(accountingService portssvc.AccountingService, cfg *config.Config) *reportingHandler {
	return &reportingHandler{accountingService: accountingService, cfg: cfg}
}

// getBalances godoc
// @Summary Get per-account balances
// @Description Folds the full ledger into debit-normal balances per account
// @Tags reporting
// @Produce  json
// @Success 200 {object} dto.BalancesResponse
// @Failure 500 {object} map[string]string "Failed to compute balances"
// @Security BearerAuth
// @Router /reports/balances [get]
func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balances, err := h.accountingService.AccountBalances(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balances"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalancesResponse(balances))
}

// getBalanceSheet godoc
// @Summary Get the balance sheet
// @Description Derives assets, liabilities and the equity plug from the ledger
// @Tags reporting
// @Produce  json
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 500 {object} map[string]string "Failed to build balance sheet"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sheet, err := h.accountingService.BalanceSheet(c.Request.Context(), h.cfg.AccountRoles)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(sheet))
}

// getCashFlow godoc
// @Summary Get the cash flow statement
// @Description Direct-method cash flow over every cash and bank ledger line
// @Tags reporting
// @Produce  json
// @Success 200 {object} dto.CashFlowResponse
// @Failure 500 {object} map[string]string "Failed to build cash flow"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	flow, err := h.accountingService.CashFlow(c.Request.Context(), h.cfg.AccountRoles)
	if err != nil {
		logger.Error("Failed to build cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build cash flow"})
		return
	}

	c.JSON(http.StatusOK, dto.CashFlowResponse{Inflow: flow.Inflow, Outflow: flow.Outflow, Net: flow.Net})
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(group *gin.RouterGroup, cfg *config.Config, accountingService portssvc.AccountingService) {
	h := newReportingHandler(accountingService, cfg)

	reports := group.Group("/reports")
	{
		reports.GET("/balances", h.getBalances)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}
