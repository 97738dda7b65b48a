package service

import (
	"MindGarden/internal/api/dto"
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/consts"
	"MindGarden/internal/pkg/streak"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	insightLockTTL     = 10 * time.Second
	insightLockRetries = 3
)

// Locker is a best-effort distributed mutex.
type Locker interface {
	TryLock(ctx context.Context, key, token string, ttl time.Duration, retries int) (bool, error)
	Unlock(ctx context.Context, key, token string)
}

type InsightService interface {
	// ResolveContiguousRun returns the unbroken chain of daily check-ins ending
	// at target, newest first. It is empty when target has no check-in.
	ResolveContiguousRun(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) ([]*model.Checkin, error)
	// AverageMood is the mean mood over the 7 days ending at target, or nil
	// when no check-in falls inside that window.
	AverageMood(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) (*float64, error)
	// ComputeStreaks returns one entry per active habit in ascending id order.
	ComputeStreaks(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) ([]model.HabitStreak, error)
	// UpsertInsight stages the snapshot for (userID, target) on repos without
	// committing. A concurrent insert surfaces as repository.ErrDuplicate.
	UpsertInsight(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) (*model.Insight, error)
	GetInsight(ctx context.Context, userID uint64, target time.Time) (*dto.InsightDTO, error)
	ListInsights(ctx context.Context, userID uint64, days int) ([]*dto.InsightDTO, error)
	RecomputeInsight(ctx context.Context, userID uint64, date time.Time) (*model.Insight, error)
	// AffectedDates returns the snapshot dates a check-in change on the
	// changed dates invalidates: the changed dates themselves plus every
	// stored snapshot on or after the earliest of them.
	AffectedDates(ctx context.Context, userID uint64, changed ...time.Time) ([]time.Time, error)
}

type InsightServiceImpl struct {
	transactor repository.Transactor
	repos      *repository.Repos
	locker     Locker
	now        func() time.Time
}

func NewInsightService(transactor repository.Transactor, repos *repository.Repos, locker Locker) InsightService {
	return &InsightServiceImpl{
		transactor: transactor,
		repos:      repos,
		locker:     locker,
		now:        time.Now,
	}
}

func (s *InsightServiceImpl) ResolveContiguousRun(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) ([]*model.Checkin, error) {
	checkins, err := repos.Checkin.ListCheckinsUpTo(ctx, userID, target)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	return streak.ContiguousRun(checkins, target), nil
}

func (s *InsightServiceImpl) AverageMood(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) (*float64, error) {
	moods, err := repos.Checkin.ListMoodsBetween(ctx, userID, streak.WindowStart(target), target)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	return streak.MeanMood(moods), nil
}

func (s *InsightServiceImpl) ComputeStreaks(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) ([]model.HabitStreak, error) {
	habits, err := repos.Habit.ListActiveHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	if len(habits) == 0 {
		return make([]model.HabitStreak, 0), nil
	}
	run, err := s.ResolveContiguousRun(ctx, repos, userID, target)
	if err != nil {
		return nil, err
	}
	return streak.HabitStreaks(habits, run), nil
}

func (s *InsightServiceImpl) UpsertInsight(ctx context.Context, repos *repository.Repos, userID uint64, target time.Time) (*model.Insight, error) {
	target = util.Day(target)

	avg, err := s.AverageMood(ctx, repos, userID, target)
	if err != nil {
		return nil, err
	}
	streaks, err := s.ComputeStreaks(ctx, repos, userID, target)
	if err != nil {
		return nil, err
	}
	payload, err := model.EncodeHabitStreaks(streaks)
	if err != nil {
		return nil, fmt.Errorf("encode streaks: %w", err)
	}

	existing, err := repos.Insight.GetInsightByDate(ctx, userID, target)
	if err != nil {
		return nil, fmt.Errorf("get insight: %w", err)
	}

	now := s.now()
	if existing != nil {
		existing.MoodAvg7d = avg
		existing.HabitStreaksJSON = payload
		existing.UpdatedAt = now
		if err = repos.Insight.UpdateInsight(ctx, existing); err != nil {
			return nil, fmt.Errorf("update insight: %w", err)
		}
		return existing, nil
	}

	insight := &model.Insight{
		UserID:           userID,
		Date:             target,
		MoodAvg7d:        avg,
		HabitStreaksJSON: payload,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err = repos.Insight.CreateInsight(ctx, insight); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("create insight: %w", err)
	}
	return insight, nil
}

func (s *InsightServiceImpl) GetInsight(ctx context.Context, userID uint64, target time.Time) (*dto.InsightDTO, error) {
	insight, err := s.RecomputeInsight(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	return dto.ToInsightDTO(insight)
}

func (s *InsightServiceImpl) ListInsights(ctx context.Context, userID uint64, days int) ([]*dto.InsightDTO, error) {
	if days < 1 || days > consts.MaxListDays {
		return nil, ErrParamInvalid
	}
	since := util.Day(s.now()).AddDate(0, 0, -(days - 1))
	insights, err := s.repos.Insight.ListInsightsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InsightDTO, 0, len(insights))
	for _, in := range insights {
		d, err := dto.ToInsightDTO(in)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// RecomputeInsight serialises writers on (userID, date) through the lock when
// it is available and falls back to the unique index otherwise. A duplicate on
// insert is retried once as an update in a fresh transaction.
func (s *InsightServiceImpl) RecomputeInsight(ctx context.Context, userID uint64, date time.Time) (*model.Insight, error) {
	date = util.Day(date)
	if err := ensureUser(ctx, s.repos.User, userID); err != nil {
		return nil, err
	}
	key := consts.InsightLock + strconv.FormatUint(userID, 10) + ":" + util.FormatDate(date)
	token := uuid.NewString()

	locked, err := s.locker.TryLock(ctx, key, token, insightLockTTL, insightLockRetries)
	if err != nil {
		log.ErrorContext(ctx, "acquire insight lock error", "key", key, "err", err)
		return nil, UnExpectedError
	}
	if locked {
		defer s.locker.Unlock(context.WithoutCancel(ctx), key, token)
	} else {
		log.WarnContext(ctx, "insight lock busy, writing without it", "key", key)
	}

	insight, err := s.upsertInTx(ctx, userID, date)
	if errors.Is(err, repository.ErrDuplicate) {
		log.WarnContext(ctx, "insight insert raced, retrying as update", "user_id", userID, "date", util.FormatDate(date))
		insight, err = s.upsertInTx(ctx, userID, date)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrInsightConflict
		}
	}
	if err != nil {
		return nil, err
	}
	return insight, nil
}

func (s *InsightServiceImpl) upsertInTx(ctx context.Context, userID uint64, date time.Time) (*model.Insight, error) {
	var insight *model.Insight
	err := s.transactor.WithinTx(ctx, func(repos *repository.Repos) error {
		in, err := s.UpsertInsight(ctx, repos, userID, date)
		if err != nil {
			return err
		}
		insight = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return insight, nil
}

func (s *InsightServiceImpl) AffectedDates(ctx context.Context, userID uint64, changed ...time.Time) ([]time.Time, error) {
	return affectedDates(ctx, s.repos.Insight, userID, changed...)
}

// affectedDates expands changed dates to the snapshots they feed. A check-in
// on day D is inside the mood window of D..D+6 and can extend the contiguous
// run of any later day, so every stored snapshot from D on is stale. Dates
// without a snapshot after D are left to be computed on demand.
func affectedDates(ctx context.Context, insightRepo repository.InsightRepo, userID uint64, changed ...time.Time) ([]time.Time, error) {
	if len(changed) == 0 {
		return make([]time.Time, 0), nil
	}

	seen := make(map[time.Time]struct{}, len(changed))
	dates := make([]time.Time, 0, len(changed))
	add := func(d time.Time) {
		d = util.Day(d)
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	earliest := util.Day(changed[0])
	for _, d := range changed {
		add(d)
		if d = util.Day(d); d.Before(earliest) {
			earliest = d
		}
	}

	stored, err := insightRepo.ListInsightDatesFrom(ctx, userID, earliest)
	if err != nil {
		return nil, fmt.Errorf("list insight dates: %w", err)
	}
	for _, d := range stored {
		add(d)
	}

	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	return dates, nil
}
