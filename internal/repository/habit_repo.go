package repository

import (
	"MindGarden/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type HabitRepo interface {
	CreateHabit(ctx context.Context, habit *model.Habit) error
	GetHabit(ctx context.Context, userID, habitID uint64) (*model.Habit, error)
	ListActiveHabits(ctx context.Context, userID uint64) ([]*model.Habit, error)
	ListActiveHabitsByIDs(ctx context.Context, userID uint64, habitIDs []uint64) ([]*model.Habit, error)
	DeactivateHabit(ctx context.Context, userID, habitID uint64) error
}

type habitRepoImpl struct {
	db *gorm.DB
}

func NewHabitRepo(db *gorm.DB) HabitRepo {
	return &habitRepoImpl{db: db}
}

func (s *habitRepoImpl) CreateHabit(ctx context.Context, habit *model.Habit) error {
	return translateError(s.db.WithContext(ctx).Create(habit).Error)
}

// GetHabit returns nil when the habit does not exist or belongs to another user.
func (s *habitRepoImpl) GetHabit(ctx context.Context, userID, habitID uint64) (*model.Habit, error) {
	var habit model.Habit
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &habit, nil
}

// ListActiveHabits returns the user's active habits ordered by id.
func (s *habitRepoImpl) ListActiveHabits(ctx context.Context, userID uint64) ([]*model.Habit, error) {
	habits := make([]*model.Habit, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("id ASC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *habitRepoImpl) ListActiveHabitsByIDs(ctx context.Context, userID uint64, habitIDs []uint64) ([]*model.Habit, error) {
	habits := make([]*model.Habit, 0)
	if len(habitIDs) == 0 {
		return habits, nil
	}
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ? AND id IN ?", userID, true, habitIDs).
		Order("id ASC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

// DeactivateHabit soft-deletes a habit. Past check-in results keep referencing it.
func (s *habitRepoImpl) DeactivateHabit(ctx context.Context, userID, habitID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Habit{}).
		Where("id = ? AND user_id = ?", habitID, userID).
		Update("active", false).Error
}
