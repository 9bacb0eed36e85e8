package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/middleware"
)

type partyService struct {
	partyRepo portsrepo.PartyRepository
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepository) portssvc.PartyService {
	return &partyService{partyRepo: partyRepo}
}

var _ portssvc.PartyService = (*partyService)(nil)

// CreateParty registers a vendor or customer.
func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	party := domain.Party{
		PartyID:  uuid.NewString(),
		Kind:     req.Kind,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		TaxID:    req.TaxID,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID), slog.String("kind", string(party.Kind)))
	return &party, nil
}

// GetParty retrieves a party by id.
func (s *partyService) GetParty(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		}
		return nil, err
	}
	return party, nil
}

// ListParties returns all parties of the given kind.
func (s *partyService) ListParties(ctx context.Context, kind domain.PartyKind) ([]domain.Party, error) {
	parties, err := s.partyRepo.ListParties(ctx, kind)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list parties", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// UpdateParty applies the non-nil fields of the request.
func (s *partyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, updaterID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		party.Name = *req.Name
		updated = true
	}
	if req.Email != nil {
		party.Email = *req.Email
		updated = true
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
		updated = true
	}
	if req.TaxID != nil {
		party.TaxID = *req.TaxID
		updated = true
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		return party, nil
	}

	party.LastUpdatedAt = time.Now().UTC()
	party.LastUpdatedBy = updaterID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		logger.Error("Failed to update party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to update party: %w", err)
	}

	logger.Info("Party updated", slog.String("party_id", partyID))
	return party, nil
}
