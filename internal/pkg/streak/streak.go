// Package streak holds the pure parts of insight computation: contiguous run
// detection, the trailing mood mean and per-habit streak counting. Nothing here
// touches storage.
package streak

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/util"
	"slices"
	"time"
)

// MoodWindowDays is the size of the trailing mood window, target date included.
const MoodWindowDays = 7

// WindowStart returns the first day of the mood window ending at target.
func WindowStart(target time.Time) time.Time {
	return util.Day(target).AddDate(0, 0, -(MoodWindowDays - 1))
}

// ContiguousRun returns the longest prefix of checkins whose dates are target,
// target-1, target-2, ... with no gap. checkins must be ordered by date
// descending; a gap, a repeated date or an out-of-order date ends the run.
// The result is empty when the first check-in is not on target.
func ContiguousRun(checkins []*model.Checkin, target time.Time) []*model.Checkin {
	run := make([]*model.Checkin, 0)
	expected := util.Day(target)
	for _, c := range checkins {
		if c == nil || !util.Day(c.Date).Equal(expected) {
			break
		}
		run = append(run, c)
		expected = expected.AddDate(0, 0, -1)
	}
	return run
}

// MeanMood returns the arithmetic mean of moods, or nil when moods is empty.
func MeanMood(moods []int) *float64 {
	if len(moods) == 0 {
		return nil
	}
	sum := 0
	for _, m := range moods {
		sum += m
	}
	avg := float64(sum) / float64(len(moods))
	return &avg
}

// HabitStreaks counts, for every habit, the consecutive done days at the head
// of run. A habit with no result row on a day counts as not done that day.
// The result has one entry per habit, ordered by habit id.
func HabitStreaks(habits []*model.Habit, run []*model.Checkin) []model.HabitStreak {
	doneByDay := make([]map[uint64]bool, len(run))
	for i, c := range run {
		done := make(map[uint64]bool, len(c.HabitResults))
		for _, r := range c.HabitResults {
			if r.Done {
				done[r.HabitID] = true
			}
		}
		doneByDay[i] = done
	}

	streaks := make([]model.HabitStreak, 0, len(habits))
	for _, h := range habits {
		n := 0
		for _, done := range doneByDay {
			if !done[h.ID] {
				break
			}
			n++
		}
		streaks = append(streaks, model.HabitStreak{HabitID: h.ID, Streak: n})
	}

	slices.SortFunc(streaks, func(a, b model.HabitStreak) int {
		switch {
		case a.HabitID < b.HabitID:
			return -1
		case a.HabitID > b.HabitID:
			return 1
		}
		return 0
	})
	return streaks
}
