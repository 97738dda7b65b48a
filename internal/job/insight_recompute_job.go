package job

import (
	"MindGarden/internal/pkg/logger"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/service"
	"context"
	"errors"
	log "log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

const recomputeTimeout = 5 * time.Minute

// DirtyQueue is the set of (user, date) pairs awaiting recompute.
type DirtyQueue interface {
	Drain(ctx context.Context) ([]string, error)
	Ack(ctx context.Context) error
	MarkDirty(ctx context.Context, members ...string) error
}

// InsightRecomputeJob refreshes insight snapshots whose check-ins changed.
type InsightRecomputeJob struct {
	queue      DirtyQueue
	insightSvc service.InsightService
}

func NewInsightRecomputeJob(queue DirtyQueue, insightSvc service.InsightService) *InsightRecomputeJob {
	return &InsightRecomputeJob{
		queue:      queue,
		insightSvc: insightSvc,
	}
}

func (s *InsightRecomputeJob) Run() {
	traceID := "job-insight-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), traceID), recomputeTimeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce drains the queue once. Each changed date is expanded to the stored
// snapshots it feeds before recomputing; failed dates are queued again for the
// next run.
func (s *InsightRecomputeJob) RunOnce(ctx context.Context) {
	members, err := s.queue.Drain(ctx)
	if err != nil {
		log.ErrorContext(ctx, "drain insight dirty set error", "err", err)
		return
	}
	if len(members) == 0 {
		return
	}

	log.InfoContext(ctx, "start recomputing insights", "count", len(members))

	changed := make(map[uint64][]time.Time)
	for _, member := range members {
		userID, date, err := util.ParseDirtyMember(member)
		if err != nil {
			log.WarnContext(ctx, "drop malformed dirty member", "member", member, "err", err)
			continue
		}
		changed[userID] = append(changed[userID], date)
	}
	userIDs := slices.Sorted(maps.Keys(changed))

	total, successCount := 0, 0
	failed := make([]string, 0)
	for _, userID := range userIDs {
		dates, err := s.insightSvc.AffectedDates(ctx, userID, changed[userID]...)
		if err != nil {
			log.ErrorContext(ctx, "expand insight dates error", "user_id", userID, "err", err)
			dates = changed[userID]
		}

		for _, date := range dates {
			total++
			if _, err = s.insightSvc.RecomputeInsight(ctx, userID, date); err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					log.WarnContext(ctx, "drop dirty member of unknown user", "user_id", userID)
					break
				}
				log.ErrorContext(ctx, "recompute insight error", "user_id", userID, "date", util.FormatDate(date), "err", err)
				failed = append(failed, util.DirtyMember(userID, date))
				continue
			}
			successCount++
		}
	}

	if len(failed) > 0 {
		if err = s.queue.MarkDirty(ctx, failed...); err != nil {
			log.ErrorContext(ctx, "requeue failed members error", "count", len(failed), "err", err)
		}
	}

	if err = s.queue.Ack(ctx); err != nil {
		log.ErrorContext(ctx, "delete insight processing set error", "err", err)
	}

	log.InfoContext(ctx, "recompute insights finished",
		"member_count", len(members),
		"total_count", total,
		"success_count", successCount,
		"failed_count", len(failed))
}
