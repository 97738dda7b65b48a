package dto

import "time"

// CreateCheckinDTO records one day. Date is the user's local calendar date.
type CreateCheckinDTO struct {
	Date         string           `json:"date" binding:"required" validate:"datetime=2006-01-02"`
	Mood         int              `json:"mood" binding:"required" validate:"min=1,max=5"`
	Note         *string          `json:"note,omitempty" validate:"omitempty,max=2000"`
	HabitResults []HabitResultDTO `json:"habit_results" validate:"omitempty,unique=HabitID,dive"`
}

type HabitResultDTO struct {
	HabitID uint64 `json:"habit_id" validate:"required"`
	Done    bool   `json:"done"`
}

type CheckinDTO struct {
	ID           uint64           `json:"id"`
	Date         string           `json:"date"`
	Mood         int              `json:"mood"`
	Note         *string          `json:"note"`
	HabitResults []HabitResultDTO `json:"habit_results"`
	CreatedAt    time.Time        `json:"created_at"`
}
