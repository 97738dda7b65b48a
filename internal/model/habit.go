package model

import "time"

type Habit struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_habit_user_active,priority:1" json:"user_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Active    bool      `gorm:"not null;index:idx_habit_user_active,priority:2" json:"active"` // false once soft-deleted
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Habit) TableName() string {
	return "habits"
}
