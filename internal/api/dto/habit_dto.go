package dto

import "time"

// CreateHabitDTO creates a habit
type CreateHabitDTO struct {
	Name string `json:"name" binding:"required" validate:"min=1,max=100"`
}

type HabitDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
