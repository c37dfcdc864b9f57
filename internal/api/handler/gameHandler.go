package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gasikara/internal/api/dto"
	"gasikara/internal/api/models"
	"gasikara/internal/api/repository"
	"gasikara/internal/api/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit     = 50
	defaultPopularLimit  = 10
	defaultPlatformLimit = 20

	statementTimeout = 2 * time.Second
	searchTimeout    = 5 * time.Second
)

type GameHandler struct {
	svc service.GameService
	log *slog.Logger

	// strictDownload404 returns 404 when the download target is missing
	// instead of the permissive 200 the legacy behavior produces.
	strictDownload404 bool
}

func NewGameHandler(svc service.GameService, log *slog.Logger, strictDownload404 bool) *GameHandler {
	return &GameHandler{svc: svc, log: log, strictDownload404: strictDownload404}
}

func (h *GameHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/popular", h.Popular)
	rg.GET("/platform/:platform", h.ByPlatform)
	rg.GET("/search", h.Search)
	rg.GET("/stats", h.Stats)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/download", h.Download)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// parseLimit falls back to def when the parameter is absent, unparsable or
// not a positive number.
func parseLimit(c *gin.Context, def int) int {
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Identifiant invalide")
		return 0, false
	}
	return id, true
}

// List handles GET /api/games with the optional platform/category/free/
// featured/sort/limit query parameters.
func (h *GameHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	filters := repository.GameFilters{
		Platform: c.Query("platform"),
		Category: c.Query("category"),
		SortBy:   c.DefaultQuery("sort", "newest"),
		Limit:    parseLimit(c, defaultListLimit),
	}
	// presence of the flag is what matters, not its value
	if c.Query("free") != "" {
		t := true
		filters.IsFree = &t
	}
	if c.Query("featured") != "" {
		t := true
		filters.IsFeatured = &t
	}

	games, err := h.svc.GetAll(ctx, filters)
	if err != nil {
		h.log.Error("list games failed", "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la récupération des jeux")
		return
	}

	resp := make([]dto.GameBasicResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, dto.FromModelToBasicResponse(g))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(resp),
		"filters": filters,
		"games":   resp,
	})
}

func (h *GameHandler) Popular(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	limit := parseLimit(c, defaultPopularLimit)
	games, err := h.svc.GetPopular(ctx, limit)
	if err != nil {
		h.log.Error("popular games failed", "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la récupération des jeux populaires")
		return
	}

	resp := make([]dto.GameCardResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, dto.FromModelToCardResponse(g))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(resp),
		"games":   resp,
	})
}

// ByPlatform validates the path segment against the closed platform set
// before touching the store.
func (h *GameHandler) ByPlatform(c *gin.Context) {
	platform := c.Param("platform")
	if !models.IsValidPlatform(strings.ToLower(platform)) {
		fail(c, http.StatusBadRequest,
			"Plateforme non valide. Options: "+strings.Join(models.ValidPlatforms, ", "))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	limit := parseLimit(c, defaultPlatformLimit)
	games, err := h.svc.GetByPlatform(ctx, platform, limit)
	if err != nil {
		h.log.Error("games by platform failed", "platform", platform, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la récupération des jeux par plateforme")
		return
	}

	resp := make([]dto.GameCardResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, dto.FromModelToCardResponse(g))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"platform": platform,
		"count":    len(resp),
		"games":    resp,
	})
}

// Get returns one game; the read itself bumps view_count in the data layer.
func (h *GameHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	game, err := h.svc.GetByID(ctx, id)
	if errors.Is(err, repository.ErrGameNotFound) {
		fail(c, http.StatusNotFound, "Jeu non trouvé")
		return
	}
	if err != nil {
		h.log.Error("get game failed", "id", id, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la récupération du jeu")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    dto.FromModelToResponse(*game),
	})
}

// requiredCreateField checks run in this exact order; the first missing field
// short-circuits the request.
var requiredCreateFields = []struct {
	name  string
	value func(dto.CreateGameDTO) string
}{
	{"title", func(d dto.CreateGameDTO) string { return d.Title }},
	{"platform", func(d dto.CreateGameDTO) string { return d.Platform }},
	{"description", func(d dto.CreateGameDTO) string { return d.Description }},
	{"download_link", func(d dto.CreateGameDTO) string { return d.DownloadLink }},
}

func (h *GameHandler) Create(c *gin.Context) {
	var in dto.CreateGameDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	for _, f := range requiredCreateFields {
		if f.value(in) == "" {
			fail(c, http.StatusBadRequest, "Le champ "+f.name+" est requis")
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	game, err := h.svc.Create(ctx, in)
	if errors.Is(err, repository.ErrDuplicateTitlePlatform) {
		fail(c, http.StatusBadRequest, "Un jeu avec ce titre existe déjà sur cette plateforme")
		return
	}
	if err != nil {
		h.log.Error("create game failed", "title", in.Title, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la création du jeu")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Jeu créé avec succès",
		"game":    dto.FromModelToResponse(*game),
	})
}

func (h *GameHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	// existence pre-check, same pattern as delete
	if _, err := h.svc.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			fail(c, http.StatusNotFound, "Jeu non trouvé")
			return
		}
		h.log.Error("update pre-check failed", "id", id, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la mise à jour du jeu")
		return
	}

	game, err := h.svc.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrEmptyUpdate):
		fail(c, http.StatusBadRequest, "Aucun champ valide à mettre à jour")
		return
	case errors.Is(err, repository.ErrGameNotFound):
		fail(c, http.StatusNotFound, "Jeu non trouvé")
		return
	case errors.Is(err, repository.ErrDuplicateTitlePlatform):
		fail(c, http.StatusBadRequest, "Un jeu avec ce titre existe déjà sur cette plateforme")
		return
	case err != nil:
		h.log.Error("update game failed", "id", id, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la mise à jour du jeu")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Jeu mis à jour avec succès",
		"game":    dto.FromModelToResponse(*game),
	})
}

func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	if _, err := h.svc.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			fail(c, http.StatusNotFound, "Jeu non trouvé")
			return
		}
		h.log.Error("delete pre-check failed", "id", id, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la suppression du jeu")
		return
	}

	if _, err := h.svc.Delete(ctx, id); err != nil {
		h.log.Error("delete game failed", "id", id, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la suppression du jeu")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Jeu supprimé avec succès",
	})
}

func (h *GameHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	count, err := h.svc.IncrementDownload(ctx, id)
	if errors.Is(err, repository.ErrGameNotFound) {
		if h.strictDownload404 {
			fail(c, http.StatusNotFound, "Jeu non trouvé")
			return
		}
		// permissive mode mirrors the historic behavior: report success
		// without a counter
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Téléchargement enregistré",
		})
		return
	}
	if err != nil {
		h.log.Error("increment download failed", "id", id, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de l'enregistrement du téléchargement")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Téléchargement enregistré",
		"download_count": count,
	})
}

func (h *GameHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statementTimeout)
	defer cancel()

	stats, err := h.svc.GetStats(ctx)
	if err != nil {
		h.log.Error("game stats failed", "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la récupération des statistiques")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

func (h *GameHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, "Paramètre de recherche requis")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
	defer cancel()

	games, err := h.svc.Search(ctx, q)
	if err != nil {
		h.log.Error("search games failed", "query", q, "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la recherche des jeux")
		return
	}

	resp := make([]dto.GameCardResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, dto.FromModelToCardResponse(g))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   q,
		"count":   len(resp),
		"games":   resp,
	})
}
