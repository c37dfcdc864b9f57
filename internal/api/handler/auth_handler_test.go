package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"gasikara/internal/api/models"
	"gasikara/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(username, password string) (string, string, *models.Admin, error) {
	args := m.Called(username, password)
	var admin *models.Admin
	if args.Get(2) != nil {
		admin = args.Get(2).(*models.Admin)
	}
	return args.String(0), args.String(1), admin, args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(jwt.MapClaims), args.Error(1)
}

func newAuthRouter(svc *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), 900)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/auth"))
	return r
}

func TestAuthHandler_LoginOK(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", "admin", "s3cret").Return("access-token", "refresh-token",
		&models.Admin{ID: 1, Username: "admin", Role: "admin"}, nil)

	w := doRequest(newAuthRouter(svc), http.MethodPost, "/api/auth/login",
		map[string]any{"username": "admin", "password": "s3cret"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp["access_token"])
	assert.Equal(t, "refresh-token", resp["refresh_token"])
	assert.Equal(t, "Bearer", resp["token_type"])
	assert.Equal(t, float64(900), resp["expires_in"])
	assert.Equal(t, "admin", resp["username"])
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", "admin", "wrong").Return("", "", nil, service.ErrInvalidCredentials)

	w := doRequest(newAuthRouter(svc), http.MethodPost, "/api/auth/login",
		map[string]any{"username": "admin", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Mot de passe incorrect", decodeBody(t, w)["error"])
}

func TestAuthHandler_LoginMissingBody(t *testing.T) {
	svc := new(MockAuthService)

	w := doRequest(newAuthRouter(svc), http.MethodPost, "/api/auth/login", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_RefreshOK(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("RefreshAccessToken", "old-refresh").Return("new-access", "new-refresh", nil)

	w := doRequest(newAuthRouter(svc), http.MethodPost, "/api/auth/refresh",
		map[string]any{"refresh_token": "old-refresh"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-access", resp["access_token"])
	assert.Equal(t, "new-refresh", resp["refresh_token"])
}

func TestAuthHandler_RefreshRejected(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("RefreshAccessToken", "stale").Return("", "", service.ErrExpiredToken)

	w := doRequest(newAuthRouter(svc), http.MethodPost, "/api/auth/refresh",
		map[string]any{"refresh_token": "stale"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Jeton invalide ou expiré", decodeBody(t, w)["error"])
}
