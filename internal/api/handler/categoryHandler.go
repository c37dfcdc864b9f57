package handler

import (
	"log/slog"
	"net/http"

	"gasikara/internal/api/repository"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	repo repository.CategoryRepository
	log  *slog.Logger
}

func NewCategoryHandler(repo repository.CategoryRepository, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{repo: repo, log: log}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("list categories failed", "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la récupération des catégories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(categories),
		"categories": categories,
	})
}
