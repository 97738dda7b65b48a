package dto

import (
	"MindGarden/internal/model"
	"time"
)

// InsightDTO carries the stored payload as-is plus its decoded form.
type InsightDTO struct {
	ID               uint64              `json:"id"`
	UserID           uint64              `json:"user_id"`
	Date             string              `json:"date"`
	MoodAvg7d        *float64            `json:"mood_avg_7d"`
	HabitStreaksJSON string              `json:"habit_streaks_json"`
	HabitStreaks     []model.HabitStreak `json:"habit_streaks"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
