package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

// googleOAuthHandler handles the back-office Google sign-in. The frontend
// completes the consent flow and posts the authorization code here; the
// handler exchanges it, validates the ID token and issues an application JWT
// for the matching admin staff user.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthService
	authService        portssvc.AuthService
}

func newGoogleOAuthHandler(googleOAuthService portssvc.GoogleOAuthService, authService portssvc.AuthService) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
	}
}

// exchangeCodeRequest is the JSON body for the exchange-code endpoint.
type exchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// loginURL godoc
// @Summary Get the Google consent URL
// @Description Returns the URL to redirect the admin to, with a fresh CSRF state
// @Tags oauth
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Failed to build login URL"
// @Router /auth/google/login-url [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.googleOAuthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build login URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   h.googleOAuthService.GetGoogleLoginURL(c.Request.Context(), state),
		"state": state,
	})
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code for an application JWT
// @Description Exchanges the code, validates the ID token and signs in the matching admin
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body exchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid or expired code"
// @Failure 401 {object} map[string]string "Not an admin account"
// @Failure 500 {object} map[string]string "Exchange failed"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req exchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired authorization code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to communicate with Google"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google token response")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !emailVerified {
		logger.Warn("Google token email missing or unverified")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google account email is missing or unverified"})
		return
	}

	user, token, expiresAt, err := h.authService.LoginWithGoogleEmail(ctx, email)
	if err != nil {
		if errors.Is(err, services.ErrNotAdminEmail) || errors.Is(err, services.ErrStaffInactive) {
			logger.Warn("Google sign-in rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "This Google account is not linked to an admin"})
			return
		}
		logger.Error("Google sign-in failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToStaffResponse(user),
	})
}

// registerGoogleOAuthRoutes registers the Google sign-in routes.
func registerGoogleOAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services.GoogleOAuth, services.Auth)

	google := r.Group("/auth/google")
	{
		google.GET("/login-url", h.loginURL)
		google.POST("/exchange-code", h.exchangeCode)
	}
}
