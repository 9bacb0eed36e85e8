package dto

import "github.com/restobook/restobook/internal/core/domain"

// CreatePartyRequest registers a vendor or customer.
type CreatePartyRequest struct {
	Kind  domain.PartyKind `json:"kind" binding:"required,oneof=VENDOR CUSTOMER"`
	Name  string           `json:"name" binding:"required"`
	Email string           `json:"email" binding:"omitempty,email"`
	Phone string           `json:"phone"`
	TaxID string           `json:"taxID"`
}

// UpdatePartyRequest updates a party; nil fields are left unchanged.
type UpdatePartyRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	TaxID    *string `json:"taxID"`
	IsActive *bool   `json:"isActive"`
}
