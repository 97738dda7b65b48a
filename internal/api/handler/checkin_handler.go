package handler

import (
	"MindGarden/internal/api/dto"
	"MindGarden/internal/pkg/response"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckinHandler struct {
	checkinSvc service.CheckinService
}

func NewCheckinHandler(checkinSvc service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinSvc: checkinSvc}
}

func (s *CheckinHandler) CreateCheckin(c *gin.Context) {
	var req dto.CreateCheckinDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	checkin, err := s.checkinSvc.CreateCheckin(c, currentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, checkin)
}

func (s *CheckinHandler) ListCheckins(c *gin.Context) {
	days, err := parseDays(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	checkins, err := s.checkinSvc.ListCheckins(c, currentUserID(c), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, checkins)
}
