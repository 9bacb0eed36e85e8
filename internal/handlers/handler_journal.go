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

// journalHandler handles manual journal entry requests.
type journalHandler struct {
	accountingService portssvc.AccountingService
}

func newJournalHandler(accountingService portssvc.AccountingService) *journalHandler {
	return &journalHandler{accountingService: accountingService}
}

// createJournalEntry godoc
// @Summary Create a manual journal entry
// @Description Validates and appends a balanced journal entry to the ledger
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 500 {object} map[string]string "Failed to write entry"
// @Security BearerAuth
// @Router /journal [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.accountingService.CreateJournalEntry(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoLines),
			errors.Is(err, services.ErrUnbalancedEntry),
			errors.Is(err, services.ErrNegativeAmount):
			logger.Warn("Journal entry rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Returns the full ledger, newest entry first
// @Tags journal
// @Produce  json
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /journal [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.accountingService.ListJournalEntries(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Retrieves one journal entry with its lines
// @Tags journal
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /journal/{entryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.accountingService.GetJournalEntry(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// registerJournalRoutes registers the manual journal routes.
func registerJournalRoutes(group *gin.RouterGroup, accountingService portssvc.AccountingService) {
	h := newJournalHandler(accountingService)

	journal := group.Group("/journal")
	{
		journal.POST("", h.createJournalEntry)
		journal.GET("", h.listJournalEntries)
		journal.GET("/:entryID", h.getJournalEntry)
	}
}
