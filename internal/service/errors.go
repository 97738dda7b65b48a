package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("invalid parameter")
	ErrUserNotFound    = errors.New("user not found")
	ErrHabitNotFound   = errors.New("habit not found")
	ErrInvalidHabit    = errors.New("habit is not active or not owned by user")
	ErrCheckinExists   = errors.New("check-in for this date already exists")
	ErrInsightConflict = errors.New("insight was written concurrently, please retry")
	ErrTooManyRequests = errors.New("too many requests")
	ErrExportFailed    = errors.New("export failed, please retry later")
	UnauthorizedError  = errors.New("unauthorized")
	UnExpectedError    = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrUserNotFound:    Unauthorized,
	ErrHabitNotFound:   NotFound,
	ErrInvalidHabit:    BadRequest,
	ErrCheckinExists:   Conflict,
	ErrInsightConflict: Conflict,
	ErrTooManyRequests: TooManyRequests,
	ErrExportFailed:    InternalServerError,
	UnauthorizedError:  Unauthorized,
	UnExpectedError:    InternalServerError,
}
