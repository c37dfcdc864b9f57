package service

import (
	"errors"
	"time"

	"gasikara/internal/api/auth"
	"gasikara/internal/api/models"
	"gasikara/internal/api/repository"
	"gasikara/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

type AuthService interface {
	Login(username, password string) (accessToken, refreshToken string, admin *models.Admin, err error)
	RefreshAccessToken(refreshToken string) (newAccessToken, newRefreshToken string, err error)
	ValidateToken(tokenString string) (jwt.MapClaims, error)
}

type authService struct {
	adminRepo        repository.AdminRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		adminRepo:        adminRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// Login authenticates an admin account and hands back an access/refresh
// token pair.
func (s *authService) Login(username, password string) (string, string, *models.Admin, error) {
	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		// Dummy compare so missing accounts take as long as wrong passwords.
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(admin.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(admin)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(admin)
	if err != nil {
		return "", "", nil, err
	}

	now := time.Now()
	if err := s.adminRepo.TouchLastLogin(admin.ID, now); err == nil {
		admin.LastLogin = &now
	}

	return accessToken, refreshToken, admin, nil
}

// RefreshAccessToken rotates both tokens: the presented refresh token is
// revoked and a fresh pair is issued.
func (s *authService) RefreshAccessToken(refreshToken string) (string, string, error) {
	stored, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return "", "", ErrExpiredToken
	}

	admin, err := s.adminRepo.FindByID(stored.AdminID)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	if err := s.refreshTokenRepo.Revoke(stored.ID); err != nil {
		return "", "", err
	}

	newAccess, err := s.generateAccessToken(admin)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.generateRefreshToken(admin)
	if err != nil {
		return "", "", err
	}
	return newAccess, newRefresh, nil
}

func (s *authService) generateAccessToken(admin *models.Admin) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(admin *models.Admin) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		AdminID:   admin.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(refreshToken); err != nil {
		return "", err
	}
	return refreshToken.Token, nil
}

// ValidateToken parses and verifies an access token, returning its claims.
func (s *authService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims["type"] != "access" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
