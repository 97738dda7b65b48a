package handler

import (
	"MindGarden/internal/api/dto"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	dbPing Pinger
}

func NewHealthHandler(dbPing Pinger) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Healthz always answers 200 so orchestrators can tell a slow database from a
// dead process. db_ok carries the database state.
func (s *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbOK := true
	if err := s.dbPing(ctx); err != nil {
		log.WarnContext(ctx, "health check db ping failed", "err", err)
		dbOK = false
	}
	c.JSON(http.StatusOK, dto.HealthDTO{Status: "ok", DBOK: dbOK})
}
