package model

import (
	"time"

	"github.com/goccy/go-json"
)

type Insight struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	UserID           uint64    `gorm:"not null;uniqueIndex:idx_insight_user_date,priority:1" json:"user_id"`
	Date             time.Time `gorm:"type:date;not null;uniqueIndex:idx_insight_user_date,priority:2" json:"date"`
	MoodAvg7d        *float64  `gorm:"column:mood_avg_7d" json:"mood_avg_7d"`
	HabitStreaksJSON string    `gorm:"column:habit_streaks_json;type:text;not null" json:"habit_streaks_json"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Insight) TableName() string {
	return "insights"
}

type HabitStreak struct {
	HabitID uint64 `json:"habit_id"`
	Streak  int    `json:"streak"`
}

// HabitStreakPayload is the persisted shape of Insight.HabitStreaksJSON.
type HabitStreakPayload struct {
	Habits []HabitStreak `json:"habits"`
}

func EncodeHabitStreaks(streaks []HabitStreak) (string, error) {
	if streaks == nil {
		streaks = make([]HabitStreak, 0)
	}
	b, err := json.Marshal(HabitStreakPayload{Habits: streaks})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeHabitStreaks(raw string) ([]HabitStreak, error) {
	if raw == "" {
		return make([]HabitStreak, 0), nil
	}
	var payload HabitStreakPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, err
	}
	if payload.Habits == nil {
		payload.Habits = make([]HabitStreak, 0)
	}
	return payload.Habits, nil
}
