package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

type partyHandler struct {
	partyService portssvc.PartyService
}

func newPartyHandler(partyService portssvc.PartyService) *partyHandler {
	return &partyHandler{partyService: partyService}
}

// createParty godoc
// @Summary Register a vendor or customer
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   party body dto.CreatePartyRequest true "Party"
// @Success 201 {object} domain.Party
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Failed to create party"
// @Security BearerAuth
// @Router /parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), req, creatorID)
	if err != nil {
		logger.Error("Failed to create party", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create party"})
		return
	}

	c.JSON(http.StatusCreated, party)
}

// listParties godoc
// @Summary List vendors or customers
// @Tags parties
// @Produce  json
// @Param   kind query string true "VENDOR or CUSTOMER"
// @Success 200 {array} domain.Party
// @Failure 400 {object} map[string]string "Invalid kind"
// @Failure 500 {object} map[string]string "Failed to list parties"
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind := domain.PartyKind(c.Query("kind"))
	if kind != domain.PartyVendor && kind != domain.PartyCustomer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be VENDOR or CUSTOMER"})
		return
	}

	parties, err := h.partyService.ListParties(c.Request.Context(), kind)
	if err != nil {
		logger.Error("Failed to list parties", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list parties"})
		return
	}

	c.JSON(http.StatusOK, parties)
}

// getParty godoc
// @Summary Get a party
// @Tags parties
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 200 {object} domain.Party
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to retrieve party"
// @Security BearerAuth
// @Router /parties/{partyID} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	party, err := h.partyService.GetParty(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
			return
		}
		logger.Error("Failed to get party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve party"})
		return
	}

	c.JSON(http.StatusOK, party)
}

// updateParty godoc
// @Summary Update a party
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Param   party body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} domain.Party
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to update party"
// @Security BearerAuth
// @Router /parties/{partyID} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updaterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), partyID, req, updaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
			return
		}
		logger.Error("Failed to update party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update party"})
		return
	}

	c.JSON(http.StatusOK, party)
}

// registerPartyRoutes registers the vendor/customer routes.
func registerPartyRoutes(group *gin.RouterGroup, partyService portssvc.PartyService) {
	h := newPartyHandler(partyService)

	parties := group.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:partyID", h.getParty)
		parties.PUT("/:partyID", h.updateParty)
	}
}
