package repository

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/util"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type InsightRepo interface {
	GetInsightByDate(ctx context.Context, userID uint64, date time.Time) (*model.Insight, error)
	CreateInsight(ctx context.Context, insight *model.Insight) error
	UpdateInsight(ctx context.Context, insight *model.Insight) error
	ListInsightsSince(ctx context.Context, userID uint64, since time.Time) ([]*model.Insight, error)
	ListInsightDatesFrom(ctx context.Context, userID uint64, from time.Time) ([]time.Time, error)
}

type insightRepoImpl struct {
	db *gorm.DB
}

func NewInsightRepo(db *gorm.DB) InsightRepo {
	return &insightRepoImpl{db: db}
}

func (s *insightRepoImpl) GetInsightByDate(ctx context.Context, userID uint64, date time.Time) (*model.Insight, error) {
	var insight model.Insight
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, util.Day(date)).
		First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insight, nil
}

// CreateInsight inserts a new snapshot. A concurrent insert for the same
// (user, date) surfaces as ErrDuplicate.
func (s *insightRepoImpl) CreateInsight(ctx context.Context, insight *model.Insight) error {
	insight.Date = util.Day(insight.Date)
	return translateError(s.db.WithContext(ctx).Create(insight).Error)
}

// UpdateInsight overwrites the computed columns of an existing snapshot.
func (s *insightRepoImpl) UpdateInsight(ctx context.Context, insight *model.Insight) error {
	return s.db.WithContext(ctx).Model(&model.Insight{}).
		Where("id = ?", insight.ID).
		Updates(map[string]any{
			"mood_avg_7d":        insight.MoodAvg7d,
			"habit_streaks_json": insight.HabitStreaksJSON,
			"updated_at":         insight.UpdatedAt,
		}).Error
}

// ListInsightsSince returns snapshots dated on or after since, newest first.
func (s *insightRepoImpl) ListInsightsSince(ctx context.Context, userID uint64, since time.Time) ([]*model.Insight, error) {
	insights := make([]*model.Insight, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, util.Day(since)).
		Order("date DESC").
		Find(&insights).Error
	if err != nil {
		return nil, err
	}
	return insights, nil
}

// ListInsightDatesFrom returns the dates of stored snapshots on or after from,
// oldest first.
func (s *insightRepoImpl) ListInsightDatesFrom(ctx context.Context, userID uint64, from time.Time) ([]time.Time, error) {
	var insights []model.Insight
	err := s.db.WithContext(ctx).
		Select("date").
		Where("user_id = ? AND date >= ?", userID, util.Day(from)).
		Order("date ASC").
		Find(&insights).Error
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(insights))
	for _, in := range insights {
		dates = append(dates, util.Day(in.Date))
	}
	return dates, nil
}
