package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos groups the repositories bound to one *gorm.DB, either the pool or a transaction.
type Repos struct {
	User    UserRepo
	Habit   HabitRepo
	Checkin CheckinRepo
	Insight InsightRepo
}

func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		User:    NewUserRepo(db),
		Habit:   NewHabitRepo(db),
		Checkin: NewCheckinRepo(db),
		Insight: NewInsightRepo(db),
	}
}

// Transactor runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repos *Repos) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (s *gormTransactor) WithinTx(ctx context.Context, fn func(repos *Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}
