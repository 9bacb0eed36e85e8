package dto

import (
	"time"

	"github.com/restobook/restobook/internal/core/domain"
)

// PINLoginRequest is a POS terminal sign-in.
type PINLoginRequest struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required,min=4,max=8,numeric"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      StaffResponse `json:"user"`
}

// CreateStaffRequest registers a staff member. The PIN is hashed before
// storage and never persisted in clear.
type CreateStaffRequest struct {
	Name  string           `json:"name" binding:"required"`
	Email string           `json:"email" binding:"omitempty,email"`
	Role  domain.StaffRole `json:"role" binding:"required,oneof=ADMIN CASHIER"`
	PIN   string           `json:"pin" binding:"required,min=4,max=8,numeric"`
}

// UpdateStaffRequest changes a staff member's role, active flag or PIN.
// Omitted fields keep their current value.
type UpdateStaffRequest struct {
	Role     domain.StaffRole `json:"role" binding:"omitempty,oneof=ADMIN CASHIER"`
	IsActive *bool            `json:"isActive"`
	PIN      string           `json:"pin" binding:"omitempty,min=4,max=8,numeric"`
}

// StaffResponse mirrors a domain.StaffUser without credentials.
type StaffResponse struct {
	UserID   string           `json:"userID"`
	Name     string           `json:"name"`
	Email    string           `json:"email,omitempty"`
	Role     domain.StaffRole `json:"role"`
	IsActive bool             `json:"isActive"`
}

// ToStaffResponse converts a domain.StaffUser.
func ToStaffResponse(u *domain.StaffUser) StaffResponse {
	return StaffResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

// ToStaffResponses converts a slice of staff users.
func ToStaffResponses(users []domain.StaffUser) []StaffResponse {
	responses := make([]StaffResponse, len(users))
	for i := range users {
		responses[i] = ToStaffResponse(&users[i])
	}
	return responses
}
