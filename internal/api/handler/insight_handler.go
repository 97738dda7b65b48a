package handler

import (
	"MindGarden/internal/pkg/response"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightSvc service.InsightService
	today      func() time.Time
}

func NewInsightHandler(insightSvc service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightSvc: insightSvc,
		today:      util.Today,
	}
}

// GetTodayInsight recomputes and returns the snapshot for ?date=, or for the
// server's current date when the client omits it.
func (s *InsightHandler) GetTodayInsight(c *gin.Context) {
	target := s.today()
	if raw := c.Query("date"); raw != "" {
		d, err := util.ParseDate(raw)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		target = d
	}

	insight, err := s.insightSvc.GetInsight(c, currentUserID(c), target)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insight)
}

func (s *InsightHandler) ListInsights(c *gin.Context) {
	days, err := parseDays(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	insights, err := s.insightSvc.ListInsights(c, currentUserID(c), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insights)
}
