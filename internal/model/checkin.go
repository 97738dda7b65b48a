package model

import "time"

type Checkin struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_checkin_user_date,priority:1" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_checkin_user_date,priority:2" json:"date"`
	Mood      int       `gorm:"not null" json:"mood"`
	Note      *string   `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	HabitResults []CheckinHabitResult `gorm:"foreignKey:CheckinID;references:ID;constraint:OnDelete:CASCADE" json:"habit_results"`
}

func (Checkin) TableName() string {
	return "checkins"
}

// CheckinHabitResult records whether a habit was done on a check-in day.
// A missing row means the habit was not done.
type CheckinHabitResult struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CheckinID uint64 `gorm:"not null;uniqueIndex:idx_result_checkin_habit,priority:1" json:"checkin_id"`
	HabitID   uint64 `gorm:"not null;uniqueIndex:idx_result_checkin_habit,priority:2;index:idx_result_habit" json:"habit_id"`
	Done      bool   `gorm:"not null;default:false" json:"done"`

	Habit Habit `gorm:"foreignKey:HabitID;references:ID" json:"-"`
}

func (CheckinHabitResult) TableName() string {
	return "checkin_habit_results"
}
