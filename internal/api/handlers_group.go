package api

import (
	"MindGarden/internal/api/config"
	"MindGarden/internal/api/handler"
	"MindGarden/internal/api/middleware"
)

// HandlersGroup holds the initialised handlers and what the router needs to
// build per-route middleware.
type HandlersGroup struct {
	HabitHandler   *handler.HabitHandler
	CheckinHandler *handler.CheckinHandler
	InsightHandler *handler.InsightHandler
	ExportHandler  *handler.ExportHandler
	HealthHandler  *handler.HealthHandler

	RateCounter middleware.RateCounter
	RateLimit   config.RateLimitConfig
	Log         config.LogConfig
}
