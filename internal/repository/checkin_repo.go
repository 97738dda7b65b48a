package repository

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/util"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CheckinRepo interface {
	CreateCheckin(ctx context.Context, checkin *model.Checkin) error
	GetCheckinByDate(ctx context.Context, userID uint64, date time.Time) (*model.Checkin, error)
	ListCheckinsUpTo(ctx context.Context, userID uint64, date time.Time) ([]*model.Checkin, error)
	ListCheckinsBetween(ctx context.Context, userID uint64, start, end time.Time) ([]*model.Checkin, error)
	ListMoodsBetween(ctx context.Context, userID uint64, start, end time.Time) ([]int, error)
	ListCheckinsWithNote(ctx context.Context, userID uint64) ([]*model.Checkin, error)
}

type checkinRepoImpl struct {
	db *gorm.DB
}

func NewCheckinRepo(db *gorm.DB) CheckinRepo {
	return &checkinRepoImpl{db: db}
}

// CreateCheckin inserts the check-in and its habit results in one transaction.
// A second check-in for the same (user, date) returns ErrDuplicate.
func (s *checkinRepoImpl) CreateCheckin(ctx context.Context, checkin *model.Checkin) error {
	checkin.Date = util.Day(checkin.Date)
	results := checkin.HabitResults

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("HabitResults").Create(checkin).Error; err != nil {
			return err
		}
		for i := range results {
			results[i].CheckinID = checkin.ID
		}
		if len(results) > 0 {
			if err := tx.Omit("Habit").Create(&results).Error; err != nil {
				return err
			}
		}
		return nil
	})
	checkin.HabitResults = results
	return translateError(err)
}

func (s *checkinRepoImpl) GetCheckinByDate(ctx context.Context, userID uint64, date time.Time) (*model.Checkin, error) {
	var checkin model.Checkin
	err := s.db.WithContext(ctx).
		Preload("HabitResults").
		Where("user_id = ? AND date = ?", userID, util.Day(date)).
		First(&checkin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &checkin, nil
}

// ListCheckinsUpTo returns every check-in on or before date, newest first, with
// habit results loaded in a single extra query.
func (s *checkinRepoImpl) ListCheckinsUpTo(ctx context.Context, userID uint64, date time.Time) ([]*model.Checkin, error) {
	checkins := make([]*model.Checkin, 0)
	err := s.db.WithContext(ctx).
		Preload("HabitResults").
		Where("user_id = ? AND date <= ?", userID, util.Day(date)).
		Order("date DESC").
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	return checkins, nil
}

// ListCheckinsBetween returns check-ins in [start, end], newest first.
func (s *checkinRepoImpl) ListCheckinsBetween(ctx context.Context, userID uint64, start, end time.Time) ([]*model.Checkin, error) {
	checkins := make([]*model.Checkin, 0)
	err := s.db.WithContext(ctx).
		Preload("HabitResults").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, util.Day(start), util.Day(end)).
		Order("date DESC").
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	return checkins, nil
}

// ListMoodsBetween returns the moods of all check-ins in [start, end].
func (s *checkinRepoImpl) ListMoodsBetween(ctx context.Context, userID uint64, start, end time.Time) ([]int, error) {
	moods := make([]int, 0)
	err := s.db.WithContext(ctx).Model(&model.Checkin{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, util.Day(start), util.Day(end)).
		Pluck("mood", &moods).Error
	if err != nil {
		return nil, err
	}
	return moods, nil
}

// ListCheckinsWithNote returns check-ins carrying a non-empty note, oldest first.
func (s *checkinRepoImpl) ListCheckinsWithNote(ctx context.Context, userID uint64) ([]*model.Checkin, error) {
	checkins := make([]*model.Checkin, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND note IS NOT NULL AND note <> ''", userID).
		Order("date ASC").
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	return checkins, nil
}
