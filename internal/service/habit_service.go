package service

import (
	"MindGarden/internal/api/dto"
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/consts"
	"MindGarden/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"unicode/utf8"
)

type HabitService interface {
	CreateHabit(ctx context.Context, userID uint64, name string) (*dto.HabitDTO, error)
	ListHabits(ctx context.Context, userID uint64) ([]*dto.HabitDTO, error)
	DeleteHabit(ctx context.Context, userID, habitID uint64) error
}

type HabitServiceImpl struct {
	userRepo  repository.UserRepo
	habitRepo repository.HabitRepo
}

func NewHabitService(userRepo repository.UserRepo, habitRepo repository.HabitRepo) HabitService {
	return &HabitServiceImpl{
		userRepo:  userRepo,
		habitRepo: habitRepo,
	}
}

func (s *HabitServiceImpl) CreateHabit(ctx context.Context, userID uint64, name string) (*dto.HabitDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > consts.HabitNameMaxLen {
		return nil, ErrParamInvalid
	}
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	habit := &model.Habit{
		UserID: userID,
		Name:   name,
		Active: true,
	}
	if err := s.habitRepo.CreateHabit(ctx, habit); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "habit created", "user_id", userID, "habit_id", habit.ID)
	return dto.ToHabitDTO(habit)
}

func (s *HabitServiceImpl) ListHabits(ctx context.Context, userID uint64) ([]*dto.HabitDTO, error) {
	habits, err := s.habitRepo.ListActiveHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.HabitDTO, 0, len(habits))
	for _, h := range habits {
		d, err := dto.ToHabitDTO(h)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// DeleteHabit deactivates the habit. Deleting an already inactive habit is a no-op.
func (s *HabitServiceImpl) DeleteHabit(ctx context.Context, userID, habitID uint64) error {
	habit, err := s.habitRepo.GetHabit(ctx, userID, habitID)
	if err != nil {
		return err
	}
	if habit == nil {
		return ErrHabitNotFound
	}
	if !habit.Active {
		return nil
	}
	if err = s.habitRepo.DeactivateHabit(ctx, userID, habitID); err != nil {
		return err
	}
	log.InfoContext(ctx, "habit deactivated", "user_id", userID, "habit_id", habitID)
	return nil
}
