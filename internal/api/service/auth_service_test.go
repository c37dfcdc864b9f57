package service

import (
	"testing"
	"time"

	"gasikara/internal/api/auth"
	"gasikara/internal/api/models"
	"gasikara/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(admin *models.Admin) error {
	return m.Called(admin).Error(0)
}

func (m *MockAdminRepository) FindByUsername(username string) (*models.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByID(id int64) (*models.Admin, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) TouchLastLogin(id int64, at time.Time) error {
	return m.Called(id, at).Error(0)
}

func (m *MockAdminRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	return m.Called(token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired() error {
	return m.Called().Error(0)
}

func newTestAuthService(adminRepo *MockAdminRepository, tokenRepo *MockRefreshTokenRepository) AuthService {
	return NewAuthService(adminRepo, tokenRepo, &config.Config{
		JWTSecret:       testJWTSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
}

func testAdmin(t *testing.T, password string) *models.Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.Admin{
		ID:       1,
		Username: "admin",
		Email:    "admin@gasikara.local",
		Password: hash,
		Role:     "admin",
		IsActive: true,
	}
}

func TestAuthService_LoginSuccess(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	admin := testAdmin(t, "s3cret-pass")
	adminRepo.On("FindByUsername", "admin").Return(admin, nil)
	adminRepo.On("TouchLastLogin", int64(1), mock.AnythingOfType("time.Time")).Return(nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	svc := newTestAuthService(adminRepo, tokenRepo)
	access, refresh, got, err := svc.Login("admin", "s3cret-pass")

	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "admin", got.Username)
	assert.NotNil(t, got.LastLogin)

	// the access token must verify and carry the identity claims
	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])

	adminRepo.AssertExpectations(t)
	tokenRepo.AssertExpectations(t)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	adminRepo.On("FindByUsername", "admin").Return(testAdmin(t, "s3cret-pass"), nil)

	svc := newTestAuthService(adminRepo, tokenRepo)
	_, _, _, err := svc.Login("admin", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokenRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	adminRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestAuthService(adminRepo, tokenRepo)
	_, _, _, err := svc.Login("ghost", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshRotatesTokens(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	admin := testAdmin(t, "s3cret-pass")
	stored := &models.RefreshToken{
		ID:        "f3b1c9e2-0000-0000-0000-000000000001",
		AdminID:   1,
		Token:     "old-refresh-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	tokenRepo.On("FindByToken", "old-refresh-token").Return(stored, nil)
	adminRepo.On("FindByID", int64(1)).Return(admin, nil)
	tokenRepo.On("Revoke", stored.ID).Return(nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	svc := newTestAuthService(adminRepo, tokenRepo)
	access, refresh, err := svc.RefreshAccessToken("old-refresh-token")

	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, "old-refresh-token", refresh)
	tokenRepo.AssertCalled(t, "Revoke", stored.ID)
}

func TestAuthService_RefreshExpired(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	stored := &models.RefreshToken{
		ID:        "f3b1c9e2-0000-0000-0000-000000000002",
		AdminID:   1,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	tokenRepo.On("FindByToken", "stale").Return(stored, nil)

	svc := newTestAuthService(adminRepo, tokenRepo)
	_, _, err := svc.RefreshAccessToken("stale")

	assert.ErrorIs(t, err, ErrExpiredToken)
	tokenRepo.AssertNotCalled(t, "Revoke", mock.Anything)
}

func TestAuthService_RefreshUnknownToken(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	tokenRepo.On("FindByToken", "nope").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestAuthService(adminRepo, tokenRepo)
	_, _, err := svc.RefreshAccessToken("nope")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(new(MockAdminRepository), new(MockRefreshTokenRepository))

	_, err := svc.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ValidateTokenRejectsExpired(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	admin := testAdmin(t, "s3cret-pass")
	adminRepo.On("FindByUsername", "admin").Return(admin, nil)
	adminRepo.On("TouchLastLogin", int64(1), mock.AnythingOfType("time.Time")).Return(nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	// issue a token that is already expired
	expiredSvc := NewAuthService(adminRepo, tokenRepo, &config.Config{
		JWTSecret:       testJWTSecret,
		AccessTokenTTL:  -time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	access, _, _, err := expiredSvc.Login("admin", "s3cret-pass")
	require.NoError(t, err)

	_, err = expiredSvc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthService_ValidateTokenWrongSecret(t *testing.T) {
	adminRepo := new(MockAdminRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	admin := testAdmin(t, "s3cret-pass")
	adminRepo.On("FindByUsername", "admin").Return(admin, nil)
	adminRepo.On("TouchLastLogin", int64(1), mock.AnythingOfType("time.Time")).Return(nil)
	tokenRepo.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	issuer := newTestAuthService(adminRepo, tokenRepo)
	access, _, _, err := issuer.Login("admin", "s3cret-pass")
	require.NoError(t, err)

	verifier := NewAuthService(adminRepo, tokenRepo, &config.Config{
		JWTSecret:       "another-secret-another-secret-32",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	_, err = verifier.ValidateToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
