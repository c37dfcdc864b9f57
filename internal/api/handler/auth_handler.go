package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"gasikara/internal/api/dto"
	"gasikara/internal/api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService    service.AuthService
	log            *slog.Logger
	accessTokenTTL int // seconds, echoed in responses
}

func NewAuthHandler(authService service.AuthService, log *slog.Logger, accessTokenTTLSeconds int) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		log:            log,
		accessTokenTTL: accessTokenTTLSeconds,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.RefreshToken)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Nom d'utilisateur et mot de passe requis")
		return
	}

	accessToken, refreshToken, admin, err := h.authService.Login(req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		fail(c, http.StatusUnauthorized, "Mot de passe incorrect")
		return
	}
	if err != nil {
		h.log.Error("admin login failed", "username", req.Username, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la connexion")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    h.accessTokenTTL,
		AdminID:      admin.ID,
		Username:     admin.Username,
		Role:         admin.Role,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Jeton de rafraîchissement requis")
		return
	}

	newAccess, newRefresh, err := h.authService.RefreshAccessToken(req.RefreshToken)
	if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrExpiredToken) {
		fail(c, http.StatusUnauthorized, "Jeton invalide ou expiré")
		return
	}
	if err != nil {
		h.log.Error("token refresh failed", "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors du rafraîchissement du jeton")
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresIn:    h.accessTokenTTL,
	})
}
