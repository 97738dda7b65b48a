package service

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/repository"
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLocker struct {
	mu       sync.Mutex
	busy     bool
	err      error
	locked   []string
	unlocked []string
}

func (f *fakeLocker) TryLock(_ context.Context, key, _ string, _ time.Duration, _ int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.busy {
		return false, nil
	}
	f.locked = append(f.locked, key)
	return true, nil
}

func (f *fakeLocker) Unlock(_ context.Context, key, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlocked = append(f.unlocked, key)
}

type fakeDirty struct {
	members []string
	err     error
}

func (f *fakeDirty) MarkDirty(_ context.Context, members ...string) error {
	if f.err != nil {
		return f.err
	}
	f.members = append(f.members, members...)
	return nil
}

type fakeObjectStore struct {
	objects    map[string][]byte
	uploadErr  error
	presignErr error
	removed    []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return err
	}
	f.objects[objectName] = buf.Bytes()
	return nil
}

func (f *fakeObjectStore) Remove(_ context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	delete(f.objects, objectName)
	return nil
}

func (f *fakeObjectStore) PresignGet(_ context.Context, objectName string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://minio.local/mindgarden/" + objectName + "?X-Amz-Signature=abc", nil
}

// blindTransactor hides existing insight rows from the first n transactions,
// which reproduces two writers both deciding to insert.
type blindTransactor struct {
	inner repository.Transactor
	n     int
	calls int
}

func (b *blindTransactor) WithinTx(ctx context.Context, fn func(repos *repository.Repos) error) error {
	return b.inner.WithinTx(ctx, func(repos *repository.Repos) error {
		b.calls++
		if b.calls <= b.n {
			blind := *repos
			blind.Insight = blindInsightRepo{InsightRepo: repos.Insight}
			return fn(&blind)
		}
		return fn(repos)
	})
}

type blindInsightRepo struct {
	repository.InsightRepo
}

func (blindInsightRepo) GetInsightByDate(context.Context, uint64, time.Time) (*model.Insight, error) {
	return nil, nil
}

var errBoom = errors.New("boom")

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := util.ParseDate(s)
	require.NoError(t, err)
	return d
}

func seedHabit(t *testing.T, db *gorm.DB, userID uint64, name string) *model.Habit {
	t.Helper()
	h := &model.Habit{UserID: userID, Name: name, Active: true}
	require.NoError(t, repository.NewHabitRepo(db).CreateHabit(context.Background(), h))
	return h
}

func seedCheckin(t *testing.T, db *gorm.DB, userID uint64, date string, mood int, done map[uint64]bool) *model.Checkin {
	t.Helper()
	c := &model.Checkin{UserID: userID, Date: mustDay(t, date), Mood: mood}
	for id, d := range done {
		c.HabitResults = append(c.HabitResults, model.CheckinHabitResult{HabitID: id, Done: d})
	}
	require.NoError(t, repository.NewCheckinRepo(db).CreateCheckin(context.Background(), c))
	return c
}
