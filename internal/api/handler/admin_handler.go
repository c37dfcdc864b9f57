package handler

import (
	"log/slog"
	"net/http"

	"gasikara/internal/api/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	stats service.StatsService
	log   *slog.Logger
}

func NewAdminHandler(stats service.StatsService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{stats: stats, log: log}
}

// RegisterRoutes mounts the admin surface; the caller attaches the JWT
// middleware to the group.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.POST("/snapshot", h.Snapshot)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.stats.GetDashboard(c.Request.Context())
	if err != nil {
		h.log.Error("dashboard failed", "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de la récupération du tableau de bord")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"dashboard": dash,
	})
}

// Snapshot persists today's counters into the statistics table.
func (h *AdminHandler) Snapshot(c *gin.Context) {
	snap, err := h.stats.SnapshotToday(c.Request.Context())
	if err != nil {
		h.log.Error("statistics snapshot failed", "error", err)
		fail(c, http.StatusInternalServerError, "Erreur lors de l'enregistrement des statistiques")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Statistiques enregistrées",
		"snapshot": snap,
	})
}
