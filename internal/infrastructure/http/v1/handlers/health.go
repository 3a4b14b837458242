package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"ventasapi/internal/core/apperror"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	*BaseHandler
	reporting *pgxpool.Pool
	auth      *pgxpool.Pool
}

// NewHealthHandler creates a health handler over both database pools.
func NewHealthHandler(base *BaseHandler, reporting, auth *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{BaseHandler: base, reporting: reporting, auth: auth}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready. It pings both databases.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.reporting.Ping(ctx); err != nil {
		h.Error(c, apperror.NewDatabase(err).WithDetail("database", "reporting"))
		return
	}
	if err := h.auth.Ping(ctx); err != nil {
		h.Error(c, apperror.NewDatabase(err).WithDetail("database", "auth"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
