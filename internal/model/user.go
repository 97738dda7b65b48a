package model

import (
	"time"
)

// User is the owner of habits, check-ins and insights. Credentials live with the
// external auth service; only the identity is kept here.
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_email"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Habits   []Habit   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Checkins []Checkin `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Insights []Insight `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}
