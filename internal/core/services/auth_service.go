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
	"github.com/restobook/restobook/internal/platform/config"
	"github.com/restobook/restobook/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid name or PIN")
	ErrStaffInactive      = errors.New("staff user is inactive")
	ErrNotAdminEmail      = errors.New("email does not belong to an admin staff user")
)

// authService handles staff PIN login, Google email login and staff
// management.
type authService struct {
	staffRepo portsrepo.StaffRepository
	cfg       *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(staffRepo portsrepo.StaffRepository, cfg *config.Config) portssvc.AuthService {
	return &authService{staffRepo: staffRepo, cfg: cfg}
}

var _ portssvc.AuthService = (*authService)(nil)

func (s *authService) issueToken(user *domain.StaffUser) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// LoginWithPIN authenticates a POS terminal sign-in. Lookup failures and
// PIN mismatches return the same error so names cannot be probed.
func (s *authService) LoginWithPIN(ctx context.Context, name, pin string) (*domain.StaffUser, string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.staffRepo.FindStaffByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		logger.Error("Failed to look up staff for PIN login", slog.String("error", err.Error()))
		return nil, "", time.Time{}, fmt.Errorf("failed to look up staff: %w", err)
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrStaffInactive
	}
	if !utils.CheckPINHash(pin, user.PINHash) {
		logger.Warn("PIN mismatch on login", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	logger.Info("Staff logged in with PIN", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return user, token, expiresAt, nil
}

// LoginWithGoogleEmail issues a token for an admin whose verified Google
// email matches a staff record. Non-admin matches are rejected.
func (s *authService) LoginWithGoogleEmail(ctx context.Context, email string) (*domain.StaffUser, string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.staffRepo.FindStaffByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", time.Time{}, ErrNotAdminEmail
		}
		logger.Error("Failed to look up staff for Google login", slog.String("error", err.Error()))
		return nil, "", time.Time{}, fmt.Errorf("failed to look up staff: %w", err)
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrStaffInactive
	}
	if user.Role != domain.RoleAdmin {
		logger.Warn("Non-admin attempted Google login", slog.String("user_id", user.UserID))
		return nil, "", time.Time{}, ErrNotAdminEmail
	}

	token, expiresAt, err := s.issueToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	logger.Info("Admin logged in with Google", slog.String("user_id", user.UserID))
	return user, token, expiresAt, nil
}

// CreateStaff registers a new staff member. The PIN is hashed before
// storage and never persisted in clear.
func (s *authService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest, creatorID string) (*domain.StaffUser, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.staffRepo.FindStaffByName(ctx, req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: staff name %s", apperrors.ErrDuplicate, req.Name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check staff name: %w", err)
	}

	pinHash, err := utils.HashPIN(req.PIN)
	if err != nil {
		logger.Error("Failed to hash PIN", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	now := time.Now().UTC()
	user := domain.StaffUser{
		UserID:   uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		PINHash:  pinHash,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.staffRepo.SaveStaff(ctx, user); err != nil {
		logger.Error("Failed to save staff user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save staff user: %w", err)
	}

	logger.Info("Staff user created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// GetStaff retrieves a staff user by id.
func (s *authService) GetStaff(ctx context.Context, userID string) (*domain.StaffUser, error) {
	user, err := s.staffRepo.FindStaffByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find staff user", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// UpdateStaff applies a partial update to a staff user. Changing the PIN
// re-hashes it; deactivating a user blocks both login paths.
func (s *authService) UpdateStaff(ctx context.Context, userID string, req dto.UpdateStaffRequest, updaterID string) (*domain.StaffUser, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.staffRepo.FindStaffByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find staff user for update", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}

	if req.Role != "" {
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.PIN != "" {
		pinHash, err := utils.HashPIN(req.PIN)
		if err != nil {
			logger.Error("Failed to hash PIN", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to hash PIN: %w", err)
		}
		user.PINHash = pinHash
	}
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = updaterID

	if err := s.staffRepo.UpdateStaff(ctx, *user); err != nil {
		logger.Error("Failed to update staff user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update staff user: %w", err)
	}

	logger.Info("Staff user updated", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return user, nil
}

// ListStaff returns every staff user.
func (s *authService) ListStaff(ctx context.Context) ([]domain.StaffUser, error) {
	users, err := s.staffRepo.ListStaff(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list staff users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list staff users: %w", err)
	}
	return users, nil
}
