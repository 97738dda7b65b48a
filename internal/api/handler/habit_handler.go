package handler

import (
	"MindGarden/internal/api/dto"
	"MindGarden/internal/pkg/response"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	habitSvc service.HabitService
}

func NewHabitHandler(habitSvc service.HabitService) *HabitHandler {
	return &HabitHandler{habitSvc: habitSvc}
}

func (s *HabitHandler) CreateHabit(c *gin.Context) {
	var req dto.CreateHabitDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	habit, err := s.habitSvc.CreateHabit(c, currentUserID(c), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, habit)
}

func (s *HabitHandler) ListHabits(c *gin.Context) {
	habits, err := s.habitSvc.ListHabits(c, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, habits)
}

func (s *HabitHandler) DeleteHabit(c *gin.Context) {
	habitID, err := strconv.ParseUint(c.Param("habit_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.habitSvc.DeleteHabit(c, currentUserID(c), habitID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
