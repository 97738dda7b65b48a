package dto

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInsightDTO(t *testing.T) {
	avg := 4.25
	created := time.Date(2025, 12, 16, 8, 30, 0, 0, time.UTC)
	in := &model.Insight{
		ID:               7,
		UserID:           3,
		Date:             time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC),
		MoodAvg7d:        &avg,
		HabitStreaksJSON: `{"habits":[{"habit_id":1,"streak":2},{"habit_id":4,"streak":0}]}`,
		CreatedAt:        created,
		UpdatedAt:        created,
	}

	out, err := ToInsightDTO(in)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), out.ID)
	assert.Equal(t, uint64(3), out.UserID)
	assert.Equal(t, "2025-12-16", out.Date)
	require.NotNil(t, out.MoodAvg7d)
	assert.InDelta(t, 4.25, *out.MoodAvg7d, 1e-9)
	assert.Equal(t, in.HabitStreaksJSON, out.HabitStreaksJSON)
	assert.Equal(t, []model.HabitStreak{{HabitID: 1, Streak: 2}, {HabitID: 4, Streak: 0}}, out.HabitStreaks)
	assert.True(t, created.Equal(out.CreatedAt))
}

func TestToInsightDTO_BadPayload(t *testing.T) {
	_, err := ToInsightDTO(&model.Insight{HabitStreaksJSON: "not json"})
	assert.Error(t, err)
}

func TestToCheckinDTO(t *testing.T) {
	c := &model.Checkin{
		ID:   9,
		Date: time.Date(2025, 12, 14, 0, 0, 0, 0, time.UTC),
		Mood: 2,
		Note: util.PtrString("tired"),
		HabitResults: []model.CheckinHabitResult{
			{HabitID: 1, Done: true},
			{HabitID: 2, Done: false},
		},
	}

	out, err := ToCheckinDTO(c)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-14", out.Date)
	assert.Equal(t, 2, out.Mood)
	require.NotNil(t, out.Note)
	assert.Equal(t, "tired", *out.Note)
	assert.Equal(t, []HabitResultDTO{{HabitID: 1, Done: true}, {HabitID: 2, Done: false}}, out.HabitResults)

	empty, err := ToCheckinDTO(&model.Checkin{Date: c.Date})
	require.NoError(t, err)
	assert.NotNil(t, empty.HabitResults)
	assert.Empty(t, empty.HabitResults)
}

func TestToHabitDTO(t *testing.T) {
	out, err := ToHabitDTO(&model.Habit{ID: 5, Name: "walk", Active: true})
	require.NoError(t, err)
	assert.Equal(t, &HabitDTO{ID: 5, Name: "walk", Active: true}, out)
}

func TestCreateCheckinDTO_Validation(t *testing.T) {
	ok := &CreateCheckinDTO{
		Date: "2025-12-16",
		Mood: 3,
		HabitResults: []HabitResultDTO{
			{HabitID: 1, Done: true},
			{HabitID: 2},
		},
	}
	assert.NoError(t, util.ValidateDTO(ok))

	badMood := *ok
	badMood.Mood = 6
	assert.Error(t, util.ValidateDTO(&badMood))

	badDate := *ok
	badDate.Date = "16/12/2025"
	assert.Error(t, util.ValidateDTO(&badDate))

	dupHabit := *ok
	dupHabit.HabitResults = []HabitResultDTO{{HabitID: 1}, {HabitID: 1, Done: true}}
	assert.Error(t, util.ValidateDTO(&dupHabit))

	longNote := *ok
	note := make([]byte, 2001)
	for i := range note {
		note[i] = 'a'
	}
	longNote.Note = util.PtrString(string(note))
	assert.Error(t, util.ValidateDTO(&longNote))
}
