package kafka

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/logger"
	"MindGarden/internal/pkg/util"
	"context"
	log "log/slog"
	"strings"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DirtyMarker queues (user, date) pairs for insight recompute.
type DirtyMarker interface {
	MarkDirty(ctx context.Context, members ...string) error
}

// CheckinHandler turns check-in binlog events into dirty insight members.
type CheckinHandler struct {
	dirty DirtyMarker
	table string
}

func NewCheckinHandler(dirty DirtyMarker) *CheckinHandler {
	return &CheckinHandler{
		dirty: dirty,
		table: model.Checkin{}.TableName(),
	}
}

func (s *CheckinHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("checkin consumer setup")
	return nil
}

func (s *CheckinHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("checkin consumer cleanup")
	return nil
}

func (s *CheckinHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-checkin consume claim", "partition", claim.Partition())
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-checkin consume claim end", "partition", claim.Partition())
	return nil
}

// logic only returns an error when retrying can help. Messages that can never
// be processed are logged and dropped.
func (s *CheckinHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	ctx = logger.WithTraceID(ctx, "kafka-checkin-"+uuid.NewString())

	members, err := s.membersOf(msg.Value)
	if err != nil {
		if errors.Is(err, ErrTableMismatch) || errors.Is(err, ErrEmptyData) {
			return nil
		}
		log.WarnContext(ctx, "drop unprocessable checkin message", "offset", msg.Offset, "err", err)
		return nil
	}
	if len(members) == 0 {
		return nil
	}

	if err = s.dirty.MarkDirty(ctx, members...); err != nil {
		return errors.Wrap(err, "mark insight dirty")
	}
	log.DebugContext(ctx, "checkin change queued", "members", members)
	return nil
}

func (s *CheckinHandler) membersOf(value []byte) ([]string, error) {
	canalMsg, err := ParseCanalMessage(value, s.table)
	if err != nil {
		return nil, err
	}
	switch canalMsg.Type {
	case CanalInsert, CanalUpdate, CanalDelete:
	default:
		return nil, nil
	}

	members := make([]string, 0, len(canalMsg.Data))
	seen := make(map[string]struct{}, len(canalMsg.Data))
	add := func(row map[string]interface{}) error {
		userID, err := StrToUint64(row["user_id"])
		if err != nil {
			return errors.Wrap(err, "user_id")
		}
		raw := ColumnString(row, "date")
		// DATETIME-backed date columns arrive as "2025-12-16 00:00:00"
		if i := strings.IndexByte(raw, ' '); i > 0 {
			raw = raw[:i]
		}
		date, err := util.ParseDate(raw)
		if err != nil {
			return errors.Wrap(err, "date")
		}
		member := util.DirtyMember(userID, date)
		if _, ok := seen[member]; !ok {
			seen[member] = struct{}{}
			members = append(members, member)
		}
		return nil
	}

	for i, row := range canalMsg.Data {
		if err = add(row); err != nil {
			return nil, err
		}
		// a moved check-in also invalidates the date it left
		if canalMsg.Type == CanalUpdate && i < len(canalMsg.Old) {
			if _, moved := canalMsg.Old[i]["date"]; moved {
				old := make(map[string]interface{}, len(row))
				for k, v := range row {
					old[k] = v
				}
				for k, v := range canalMsg.Old[i] {
					old[k] = v
				}
				if err = add(old); err != nil {
					return nil, err
				}
			}
		}
	}
	return members, nil
}
