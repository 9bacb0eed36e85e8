package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/restobook/restobook/internal/apperrors"
	"github.com/restobook/restobook/internal/core/domain"
	portsrepo "github.com/restobook/restobook/internal/core/ports/repositories"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/core/services"
	"github.com/restobook/restobook/internal/dto"
	"github.com/restobook/restobook/internal/platform/config"
	"github.com/restobook/restobook/internal/utils"
)

// --- Mock StaffRepository ---
type MockStaffRepository struct {
	mock.Mock
}

var _ portsrepo.StaffRepository = (*MockStaffRepository)(nil)

func (m *MockStaffRepository) SaveStaff(ctx context.Context, user domain.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) FindStaffByName(ctx context.Context, name string) (*domain.StaffUser, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) ListStaff(ctx context.Context) ([]domain.StaffUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffUser), args.Error(1)
}

func (m *MockStaffRepository) UpdateStaff(ctx context.Context, user domain.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AuthServiceTestSuite struct {
	suite.Suite
	mockStaffRepo *MockStaffRepository
	service       portssvc.AuthService
	cashier       domain.StaffUser
	admin         domain.StaffUser
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockStaffRepo = new(MockStaffRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "restobook-test",
	}
	suite.service = services.NewAuthService(suite.mockStaffRepo, cfg)

	pinHash, err := utils.HashPIN("1234")
	suite.Require().NoError(err)

	suite.cashier = domain.StaffUser{
		UserID:   uuid.NewString(),
		Name:     "maria",
		Role:     domain.RoleCashier,
		PINHash:  pinHash,
		IsActive: true,
	}
	suite.admin = domain.StaffUser{
		UserID:   uuid.NewString(),
		Name:     "boss",
		Email:    "boss@example.com",
		Role:     domain.RoleAdmin,
		PINHash:  pinHash,
		IsActive: true,
	}
}

func (suite *AuthServiceTestSuite) TestLoginWithPIN_Success() {
	ctx := context.Background()
	suite.mockStaffRepo.On("FindStaffByName", ctx, "maria").Return(&suite.cashier, nil).Once()

	user, token, expiresAt, err := suite.service.LoginWithPIN(ctx, "maria", "1234")

	suite.Require().NoError(err)
	suite.Equal(suite.cashier.UserID, user.UserID)
	suite.NotEmpty(token)
	suite.True(expiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(suite.cashier.UserID, claims.Subject)
	suite.Equal(string(domain.RoleCashier), claims.Role)
}

func (suite *AuthServiceTestSuite) TestLoginWithPIN_WrongPIN() {
	ctx := context.Background()
	suite.mockStaffRepo.On("FindStaffByName", ctx, "maria").Return(&suite.cashier, nil).Once()

	user, _, _, err := suite.service.LoginWithPIN(ctx, "maria", "9999")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(user)
}

func (suite *AuthServiceTestSuite) TestLoginWithPIN_UnknownNameIsIndistinguishable() {
	ctx := context.Background()
	suite.mockStaffRepo.On("FindStaffByName", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	user, _, _, err := suite.service.LoginWithPIN(ctx, "nobody", "1234")

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials, "unknown names return the same error as a wrong PIN")
	suite.Nil(user)
}

func (suite *AuthServiceTestSuite) TestLoginWithPIN_Inactive() {
	ctx := context.Background()
	inactive := suite.cashier
	inactive.IsActive = false
	suite.mockStaffRepo.On("FindStaffByName", ctx, "maria").Return(&inactive, nil).Once()

	user, _, _, err := suite.service.LoginWithPIN(ctx, "maria", "1234")

	suite.Require().ErrorIs(err, services.ErrStaffInactive)
	suite.Nil(user)
}

func (suite *AuthServiceTestSuite) TestLoginWithGoogleEmail_AdminSuccess() {
	ctx := context.Background()
	suite.mockStaffRepo.On("FindStaffByEmail", ctx, "boss@example.com").Return(&suite.admin, nil).Once()

	user, token, _, err := suite.service.LoginWithGoogleEmail(ctx, "boss@example.com")

	suite.Require().NoError(err)
	suite.Equal(suite.admin.UserID, user.UserID)
	suite.NotEmpty(token)
}

func (suite *AuthServiceTestSuite) TestLoginWithGoogleEmail_NonAdminRejected() {
	ctx := context.Background()
	cashier := suite.cashier
	cashier.Email = "maria@example.com"
	suite.mockStaffRepo.On("FindStaffByEmail", ctx, "maria@example.com").Return(&cashier, nil).Once()

	user, _, _, err := suite.service.LoginWithGoogleEmail(ctx, "maria@example.com")

	suite.Require().ErrorIs(err, services.ErrNotAdminEmail)
	suite.Nil(user)
}

func (suite *AuthServiceTestSuite) TestCreateStaff_Success() {
	ctx := context.Background()
	req := dto.CreateStaffRequest{Name: "petros", Role: domain.RoleCashier, PIN: "4321"}

	suite.mockStaffRepo.On("FindStaffByName", ctx, "petros").Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.StaffUser
	suite.mockStaffRepo.On("SaveStaff", ctx, mock.AnythingOfType("domain.StaffUser")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.StaffUser) }).
		Return(nil).Once()

	user, err := suite.service.CreateStaff(ctx, req, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.True(user.IsActive)
	suite.NotEqual("4321", saved.PINHash, "PIN is never stored in clear")
	suite.True(utils.CheckPINHash("4321", saved.PINHash))
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestCreateStaff_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateStaffRequest{Name: "maria", Role: domain.RoleCashier, PIN: "4321"}

	suite.mockStaffRepo.On("FindStaffByName", ctx, "maria").Return(&suite.cashier, nil).Once()

	user, err := suite.service.CreateStaff(ctx, req, suite.admin.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "SaveStaff", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestUpdateStaff_DeactivatesAndRehashesPIN() {
	ctx := context.Background()
	inactive := false
	req := dto.UpdateStaffRequest{IsActive: &inactive, PIN: "7777"}

	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.cashier.UserID).Return(&suite.cashier, nil).Once()

	var updated domain.StaffUser
	suite.mockStaffRepo.On("UpdateStaff", ctx, mock.AnythingOfType("domain.StaffUser")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.StaffUser) }).
		Return(nil).Once()

	user, err := suite.service.UpdateStaff(ctx, suite.cashier.UserID, req, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.False(user.IsActive)
	suite.Equal(domain.RoleCashier, user.Role, "omitted role keeps its value")
	suite.True(utils.CheckPINHash("7777", updated.PINHash))
	suite.Equal(suite.admin.UserID, updated.LastUpdatedBy)
	suite.mockStaffRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestUpdateStaff_NotFound() {
	ctx := context.Background()

	suite.mockStaffRepo.On("FindStaffByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.UpdateStaff(ctx, "missing", dto.UpdateStaffRequest{PIN: "7777"}, suite.admin.UserID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
	suite.mockStaffRepo.AssertNotCalled(suite.T(), "UpdateStaff", mock.Anything, mock.Anything)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
