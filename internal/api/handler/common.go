package handler

import (
	"MindGarden/internal/api/middleware"
	"MindGarden/internal/pkg/consts"
	"MindGarden/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) uint64 {
	return c.GetUint64(middleware.UserIDKey)
}

// parseDays reads ?days=, defaulting to consts.DefaultListDays.
func parseDays(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return consts.DefaultListDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > consts.MaxListDays {
		return 0, service.ErrParamInvalid
	}
	return days, nil
}
