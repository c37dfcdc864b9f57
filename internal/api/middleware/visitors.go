package middleware

import (
	"log/slog"

	"gasikara/internal/api/repository"

	"github.com/gin-gonic/gin"
)

// VisitorCounter bumps the daily visitor counter for every API request.
// Counting is best-effort; a Redis outage is logged once per failure and the
// request proceeds.
func VisitorCounter(visitors *repository.VisitorRepository, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := visitors.CountVisit(c.Request.Context()); err != nil {
			log.Warn("visitor count failed", "error", err)
		}
		c.Next()
	}
}
