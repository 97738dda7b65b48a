package util

import (
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// Day truncates t to midnight UTC of its own calendar date. The location of t
// decides which calendar date that is.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the server's local calendar date.
func Today() time.Time {
	return Day(time.Now())
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
