package api

import (
	"MindGarden/internal/api/middleware"
	"MindGarden/internal/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r, group.Log.LogstashIndex, group.Log.LogstashToken)

	r.GET("/healthz", group.HealthHandler.Healthz)

	insightLimit := middleware.RateLimitMiddleware(group.RateCounter, "insights",
		group.RateLimit.InsightLimit, time.Duration(group.RateLimit.InsightWindow)*time.Second)
	exportLimit := middleware.RateLimitMiddleware(group.RateCounter, "export",
		group.RateLimit.ExportLimit, time.Duration(group.RateLimit.ExportWindow)*time.Second)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware())

		habitGroup := authGroup.Group("/habits")
		{
			habitGroup.POST("", group.HabitHandler.CreateHabit)
			habitGroup.GET("", group.HabitHandler.ListHabits)
			habitGroup.DELETE("/:habit_id", group.HabitHandler.DeleteHabit)
		}

		checkinGroup := authGroup.Group("/checkins")
		{
			checkinGroup.POST("", group.CheckinHandler.CreateCheckin)
			checkinGroup.GET("", group.CheckinHandler.ListCheckins)
		}

		insightGroup := authGroup.Group("/insights")
		{
			insightGroup.GET("/today", insightLimit, group.InsightHandler.GetTodayInsight)
			insightGroup.GET("", group.InsightHandler.ListInsights)
		}

		exportGroup := authGroup.Group("/export")
		{
			exportGroup.POST("/reflections", exportLimit, group.ExportHandler.ExportReflections)
		}
	}

	return r
}
