package service

import (
	"MindGarden/internal/api/dto"
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/consts"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"
)

// DirtyMarker queues (user, date) pairs for background insight recompute.
type DirtyMarker interface {
	MarkDirty(ctx context.Context, members ...string) error
}

type CheckinService interface {
	CreateCheckin(ctx context.Context, userID uint64, req *dto.CreateCheckinDTO) (*dto.CheckinDTO, error)
	ListCheckins(ctx context.Context, userID uint64, days int) ([]*dto.CheckinDTO, error)
}

type CheckinServiceImpl struct {
	userRepo    repository.UserRepo
	habitRepo   repository.HabitRepo
	checkinRepo repository.CheckinRepo
	insightRepo repository.InsightRepo
	dirty       DirtyMarker
}

func NewCheckinService(userRepo repository.UserRepo, habitRepo repository.HabitRepo, checkinRepo repository.CheckinRepo, insightRepo repository.InsightRepo, dirty DirtyMarker) CheckinService {
	return &CheckinServiceImpl{
		userRepo:    userRepo,
		habitRepo:   habitRepo,
		checkinRepo: checkinRepo,
		insightRepo: insightRepo,
		dirty:       dirty,
	}
}

func (s *CheckinServiceImpl) CreateCheckin(ctx context.Context, userID uint64, req *dto.CreateCheckinDTO) (*dto.CheckinDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrParamInvalid
	}
	date, err := util.ParseDate(req.Date)
	if err != nil {
		return nil, ErrParamInvalid
	}
	if err = ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	existing, err := s.checkinRepo.GetCheckinByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCheckinExists
	}

	habitIDs := make([]uint64, 0, len(req.HabitResults))
	for _, r := range req.HabitResults {
		habitIDs = append(habitIDs, r.HabitID)
	}
	habits, err := s.habitRepo.ListActiveHabitsByIDs(ctx, userID, habitIDs)
	if err != nil {
		return nil, err
	}
	if len(habits) != len(habitIDs) {
		return nil, ErrInvalidHabit
	}

	checkin := &model.Checkin{
		UserID:       userID,
		Date:         date,
		Mood:         req.Mood,
		Note:         req.Note,
		HabitResults: make([]model.CheckinHabitResult, 0, len(req.HabitResults)),
	}
	for _, r := range req.HabitResults {
		checkin.HabitResults = append(checkin.HabitResults, model.CheckinHabitResult{
			HabitID: r.HabitID,
			Done:    r.Done,
		})
	}

	if err = s.checkinRepo.CreateCheckin(ctx, checkin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCheckinExists
		}
		return nil, err
	}

	s.markDirty(ctx, userID, date)

	log.InfoContext(ctx, "checkin created", "user_id", userID, "checkin_id", checkin.ID, "date", req.Date)
	return dto.ToCheckinDTO(checkin)
}

// markDirty queues the new day and every later stored snapshot it feeds.
// Failures only delay the refresh, so they are logged and swallowed.
func (s *CheckinServiceImpl) markDirty(ctx context.Context, userID uint64, date time.Time) {
	dates, err := affectedDates(ctx, s.insightRepo, userID, date)
	if err != nil {
		log.WarnContext(ctx, "list affected insight dates error", "user_id", userID, "err", err)
		dates = []time.Time{date}
	}
	members := make([]string, 0, len(dates))
	for _, d := range dates {
		members = append(members, util.DirtyMember(userID, d))
	}
	if err = s.dirty.MarkDirty(ctx, members...); err != nil {
		log.WarnContext(ctx, "mark insight dirty error", "user_id", userID, "members", members, "err", err)
	}
}

// ListCheckins returns the check-ins of the last days days, newest first.
func (s *CheckinServiceImpl) ListCheckins(ctx context.Context, userID uint64, days int) ([]*dto.CheckinDTO, error) {
	if days < 1 || days > consts.MaxListDays {
		return nil, ErrParamInvalid
	}
	today := util.Today()
	start := today.AddDate(0, 0, -(days - 1))
	// clients east of the server may already be on tomorrow
	end := today.AddDate(0, 0, 1)
	checkins, err := s.checkinRepo.ListCheckinsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CheckinDTO, 0, len(checkins))
	for _, c := range checkins {
		d, err := dto.ToCheckinDTO(c)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
