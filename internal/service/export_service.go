package service

import (
	"MindGarden/internal/api/dto"
	"MindGarden/internal/pkg/consts"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/repository"
	"bytes"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectName string) error
	PresignGet(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

type ExportService interface {
	ExportReflections(ctx context.Context, userID uint64) (*dto.ExportDTO, error)
}

type ExportServiceImpl struct {
	checkinRepo repository.CheckinRepo
	store       ObjectStore
	linkTTL     time.Duration
	now         func() time.Time
}

func NewExportService(checkinRepo repository.CheckinRepo, store ObjectStore, linkTTL time.Duration) ExportService {
	if linkTTL <= 0 {
		linkTTL = consts.DefaultPresignMinute * time.Minute
	}
	return &ExportServiceImpl{
		checkinRepo: checkinRepo,
		store:       store,
		linkTTL:     linkTTL,
		now:         time.Now,
	}
}

// ExportReflections uploads every non-empty note as a JSON document and
// returns a temporary download link.
func (s *ExportServiceImpl) ExportReflections(ctx context.Context, userID uint64) (*dto.ExportDTO, error) {
	checkins, err := s.checkinRepo.ListCheckinsWithNote(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := &dto.ReflectionExportDTO{
		Count:       len(checkins),
		Reflections: make([]*dto.ReflectionDTO, 0, len(checkins)),
	}
	for _, c := range checkins {
		doc.Reflections = append(doc.Reflections, &dto.ReflectionDTO{
			Date: util.FormatDate(c.Date),
			Mood: c.Mood,
			Note: *c.Note,
		})
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	now := s.now()
	objectName := fmt.Sprintf("%s%d/reflections-%d.json", consts.ExportObjectPrefix, userID, now.Unix())
	if err = s.store.Upload(ctx, objectName, bytes.NewReader(body), int64(len(body)), consts.ExportContentType); err != nil {
		log.ErrorContext(ctx, "upload export error", "object", objectName, "err", err)
		return nil, ErrExportFailed
	}

	link, err := s.store.PresignGet(ctx, objectName, s.linkTTL)
	if err != nil {
		log.ErrorContext(ctx, "presign export error", "object", objectName, "err", err)
		if rmErr := s.store.Remove(ctx, objectName); rmErr != nil {
			log.WarnContext(ctx, "remove orphan export error", "object", objectName, "err", rmErr)
		}
		return nil, ErrExportFailed
	}

	log.InfoContext(ctx, "reflections exported", "user_id", userID, "count", doc.Count, "object", objectName)
	return &dto.ExportDTO{
		URL:       link,
		ObjectKey: objectName,
		Count:     doc.Count,
		ExpiresAt: now.Add(s.linkTTL),
	}, nil
}
