package repository

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/testdb"
	"MindGarden/internal/pkg/util"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(s string) time.Time {
	d, err := util.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedHabits(t *testing.T, repo HabitRepo, userID uint64, names ...string) []*model.Habit {
	t.Helper()
	habits := make([]*model.Habit, 0, len(names))
	for _, name := range names {
		h := &model.Habit{UserID: userID, Name: name, Active: true}
		require.NoError(t, repo.CreateHabit(context.Background(), h))
		habits = append(habits, h)
	}
	return habits
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.True(t, isDuplicateError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isDuplicateError(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateError(errors.New("boom")))
	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), ErrDuplicate)
}

func TestUserRepo(t *testing.T) {
	db := testdb.New(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := &model.User{Email: "a@example.com"}
	require.NoError(t, repo.CreateUser(ctx, u))

	got, err := repo.GetUserById(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@example.com", got.Email)

	got, err = repo.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	missing, err := repo.GetUserById(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.CreateUser(ctx, &model.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestHabitRepo_ListAndDeactivate(t *testing.T) {
	db := testdb.New(t)
	repo := NewHabitRepo(db)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "h@example.com")
	otherID := testdb.SeedUser(t, db, "o@example.com")

	habits := seedHabits(t, repo, userID, "walk", "read", "water")
	seedHabits(t, repo, otherID, "other")

	active, err := repo.ListActiveHabits(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, habits[0].ID, active[0].ID)
	assert.Less(t, active[0].ID, active[1].ID)
	assert.Less(t, active[1].ID, active[2].ID)

	require.NoError(t, repo.DeactivateHabit(ctx, userID, habits[1].ID))

	active, err = repo.ListActiveHabits(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, habits[0].ID, active[0].ID)
	assert.Equal(t, habits[2].ID, active[1].ID)

	got, err := repo.GetHabit(ctx, userID, habits[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Active)

	foreign, err := repo.GetHabit(ctx, otherID, habits[0].ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	byIDs, err := repo.ListActiveHabitsByIDs(ctx, userID, []uint64{habits[0].ID, habits[1].ID, 999})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, habits[0].ID, byIDs[0].ID)

	none, err := repo.ListActiveHabitsByIDs(ctx, userID, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCheckinRepo_CreateAndLookup(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "c@example.com")
	habits := seedHabits(t, NewHabitRepo(db), userID, "walk", "read")
	repo := NewCheckinRepo(db)

	c := &model.Checkin{
		UserID: userID,
		Date:   day("2025-12-16"),
		Mood:   4,
		Note:   util.PtrString("good day"),
		HabitResults: []model.CheckinHabitResult{
			{HabitID: habits[0].ID, Done: true},
			{HabitID: habits[1].ID, Done: false},
		},
	}
	require.NoError(t, repo.CreateCheckin(ctx, c))
	require.NotZero(t, c.ID)
	for _, r := range c.HabitResults {
		assert.Equal(t, c.ID, r.CheckinID)
		assert.NotZero(t, r.ID)
	}

	got, err := repo.GetCheckinByDate(ctx, userID, day("2025-12-16"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Mood)
	assert.Len(t, got.HabitResults, 2)

	missing, err := repo.GetCheckinByDate(ctx, userID, day("2025-12-15"))
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := &model.Checkin{UserID: userID, Date: day("2025-12-16"), Mood: 2}
	assert.ErrorIs(t, repo.CreateCheckin(ctx, dup), ErrDuplicate)
}

func TestCheckinRepo_CreateRollsBackOnResultFailure(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "r@example.com")
	habits := seedHabits(t, NewHabitRepo(db), userID, "walk")
	repo := NewCheckinRepo(db)

	c := &model.Checkin{
		UserID: userID,
		Date:   day("2025-12-16"),
		Mood:   3,
		HabitResults: []model.CheckinHabitResult{
			{HabitID: habits[0].ID, Done: true},
			{HabitID: habits[0].ID, Done: false},
		},
	}
	assert.ErrorIs(t, repo.CreateCheckin(ctx, c), ErrDuplicate)

	got, err := repo.GetCheckinByDate(ctx, userID, day("2025-12-16"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckinRepo_ListQueries(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "l@example.com")
	otherID := testdb.SeedUser(t, db, "x@example.com")
	repo := NewCheckinRepo(db)

	for i, d := range []string{"2025-12-10", "2025-12-14", "2025-12-15", "2025-12-16", "2025-12-17"} {
		c := &model.Checkin{UserID: userID, Date: day(d), Mood: i + 1}
		if i%2 == 0 {
			c.Note = util.PtrString("note " + d)
		}
		require.NoError(t, repo.CreateCheckin(ctx, c))
	}
	require.NoError(t, repo.CreateCheckin(ctx, &model.Checkin{UserID: otherID, Date: day("2025-12-16"), Mood: 1}))
	require.NoError(t, repo.CreateCheckin(ctx, &model.Checkin{UserID: userID, Date: day("2025-12-01"), Mood: 5, Note: util.PtrString("")}))

	upTo, err := repo.ListCheckinsUpTo(ctx, userID, day("2025-12-16"))
	require.NoError(t, err)
	require.Len(t, upTo, 5)
	assert.True(t, upTo[0].Date.Equal(day("2025-12-16")))
	assert.True(t, upTo[1].Date.Equal(day("2025-12-15")))
	assert.True(t, upTo[4].Date.Equal(day("2025-12-01")))

	between, err := repo.ListCheckinsBetween(ctx, userID, day("2025-12-14"), day("2025-12-16"))
	require.NoError(t, err)
	assert.Len(t, between, 3)

	moods, err := repo.ListMoodsBetween(ctx, userID, day("2025-12-10"), day("2025-12-16"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, moods)

	empty, err := repo.ListMoodsBetween(ctx, userID, day("2026-01-01"), day("2026-01-07"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	noted, err := repo.ListCheckinsWithNote(ctx, userID)
	require.NoError(t, err)
	require.Len(t, noted, 3)
	assert.True(t, noted[0].Date.Equal(day("2025-12-10")))
	assert.True(t, noted[2].Date.Equal(day("2025-12-17")))
}

func TestInsightRepo_CreateUpdateList(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "i@example.com")
	repo := NewInsightRepo(db)

	avg := 3.5
	in := &model.Insight{UserID: userID, Date: day("2025-12-16"), MoodAvg7d: &avg, HabitStreaksJSON: `{"habits":[]}`}
	require.NoError(t, repo.CreateInsight(ctx, in))

	dup := &model.Insight{UserID: userID, Date: day("2025-12-16"), HabitStreaksJSON: `{"habits":[]}`}
	assert.ErrorIs(t, repo.CreateInsight(ctx, dup), ErrDuplicate)

	got, err := repo.GetInsightByDate(ctx, userID, day("2025-12-16"))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.MoodAvg7d)
	assert.InDelta(t, 3.5, *got.MoodAvg7d, 1e-9)

	got.MoodAvg7d = nil
	got.HabitStreaksJSON = `{"habits":[{"habit_id":1,"streak":2}]}`
	got.UpdatedAt = time.Now().Add(time.Hour)
	require.NoError(t, repo.UpdateInsight(ctx, got))

	again, err := repo.GetInsightByDate(ctx, userID, day("2025-12-16"))
	require.NoError(t, err)
	assert.Nil(t, again.MoodAvg7d)
	assert.Equal(t, `{"habits":[{"habit_id":1,"streak":2}]}`, again.HabitStreaksJSON)

	var count int64
	require.NoError(t, db.Model(&model.Insight{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.CreateInsight(ctx, &model.Insight{UserID: userID, Date: day("2025-12-10"), HabitStreaksJSON: "{}"}))
	list, err := repo.ListInsightsSince(ctx, userID, day("2025-12-12"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Date.Equal(day("2025-12-16")))
}

func TestInsightRepo_ListInsightDatesFrom(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "dates@example.com")
	otherID := testdb.SeedUser(t, db, "other-dates@example.com")
	repo := NewInsightRepo(db)

	for _, d := range []string{"2025-12-16", "2025-12-10", "2025-12-14", "2025-12-12"} {
		require.NoError(t, repo.CreateInsight(ctx, &model.Insight{UserID: userID, Date: day(d), HabitStreaksJSON: "{}"}))
	}
	require.NoError(t, repo.CreateInsight(ctx, &model.Insight{UserID: otherID, Date: day("2025-12-15"), HabitStreaksJSON: "{}"}))

	dates, err := repo.ListInsightDatesFrom(ctx, userID, day("2025-12-12"))
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.True(t, dates[0].Equal(day("2025-12-12")))
	assert.True(t, dates[1].Equal(day("2025-12-14")))
	assert.True(t, dates[2].Equal(day("2025-12-16")))

	none, err := repo.ListInsightDatesFrom(ctx, userID, day("2025-12-17"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "t@example.com")
	tx := NewTransactor(db)

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(repos *Repos) error {
		if err := repos.Insight.CreateInsight(ctx, &model.Insight{UserID: userID, Date: day("2025-12-16"), HabitStreaksJSON: "{}"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := NewInsightRepo(db).GetInsightByDate(ctx, userID, day("2025-12-16"))
	require.NoError(t, err)
	assert.Nil(t, got)

	err = tx.WithinTx(ctx, func(repos *Repos) error {
		return repos.Insight.CreateInsight(ctx, &model.Insight{UserID: userID, Date: day("2025-12-16"), HabitStreaksJSON: "{}"})
	})
	require.NoError(t, err)
	got, err = NewInsightRepo(db).GetInsightByDate(ctx, userID, day("2025-12-16"))
	require.NoError(t, err)
	assert.NotNil(t, got)
}
