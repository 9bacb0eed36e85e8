package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/restobook/restobook/internal/apperrors"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

type authHandler struct {
	authService portssvc.AuthService
}

func newAuthHandler(authService portssvc.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

// loginWithPIN godoc
// @Summary POS terminal sign-in
// @Description Authenticates a staff member by name and PIN and returns a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.PINLoginRequest true "Name and PIN"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Login failed"
// @Router /auth/login [post]
func (h *authHandler) loginWithPIN(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PINLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, token, expiresAt, err := h.authService.LoginWithPIN(c.Request.Context(), req.Name, req.PIN)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrStaffInactive) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid name or PIN"})
			return
		}
		logger.Error("PIN login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToStaffResponse(user),
	})
}

// createStaff godoc
// @Summary Register a staff member
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   staff body dto.CreateStaffRequest true "Staff member"
// @Success 201 {object} dto.StaffResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Name already taken"
// @Failure 500 {object} map[string]string "Failed to create staff"
// @Security BearerAuth
// @Router /staff [post]
func (h *authHandler) createStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.authService.CreateStaff(c.Request.Context(), req, creatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create staff", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToStaffResponse(user))
}

// listStaff godoc
// @Summary List staff members
// @Tags staff
// @Produce  json
// @Success 200 {array} dto.StaffResponse
// @Failure 500 {object} map[string]string "Failed to list staff"
// @Security BearerAuth
// @Router /staff [get]
func (h *authHandler) listStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	users, err := h.authService.ListStaff(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list staff", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list staff"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStaffResponses(users))
}

// getStaff godoc
// @Summary Get a staff member
// @Tags staff
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.StaffResponse
// @Failure 404 {object} map[string]string "Staff not found"
// @Failure 500 {object} map[string]string "Failed to retrieve staff"
// @Security BearerAuth
// @Router /staff/{userID} [get]
func (h *authHandler) getStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	user, err := h.authService.GetStaff(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
			return
		}
		logger.Error("Failed to get staff", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve staff"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStaffResponse(user))
}

// updateStaff godoc
// @Summary Update a staff member
// @Description Changes role, active flag or PIN. Omitted fields are kept.
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   staff body dto.UpdateStaffRequest true "Fields to change"
// @Success 200 {object} dto.StaffResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Staff not found"
// @Failure 500 {object} map[string]string "Failed to update staff"
// @Security BearerAuth
// @Router /staff/{userID} [put]
func (h *authHandler) updateStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updaterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.authService.UpdateStaff(c.Request.Context(), userID, req, updaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
			return
		}
		logger.Error("Failed to update staff", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStaffResponse(user))
}

// registerAuthRoutes registers the public login routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(services.Auth)

	auth := r.Group("/auth", middleware.RateLimit(loginLimiter))
	{
		auth.POST("/login", h.loginWithPIN)
	}
}

// registerStaffRoutes registers the admin staff management routes.
func registerStaffRoutes(group *gin.RouterGroup, authService portssvc.AuthService) {
	h := newAuthHandler(authService)

	staff := group.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("", h.listStaff)
		staff.GET("/:userID", h.getStaff)
		staff.PUT("/:userID", h.updateStaff)
	}
}
