package service

import (
	"MindGarden/internal/api/dto"
	"MindGarden/internal/pkg/testdb"
	"MindGarden/internal/pkg/util"
	"MindGarden/internal/repository"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportReflections(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "export@example.com")
	checkins := repository.NewCheckinRepo(db)

	c1 := seedCheckin(t, db, userID, "2025-12-15", 4, nil)
	c2 := seedCheckin(t, db, userID, "2025-12-10", 2, nil)
	seedCheckin(t, db, userID, "2025-12-12", 3, nil)
	require.NoError(t, db.Model(c1).Update("note", "second").Error)
	require.NoError(t, db.Model(c2).Update("note", "first").Error)

	store := newFakeObjectStore()
	svc := NewExportService(checkins, store, 15*time.Minute).(*ExportServiceImpl)
	fixed := time.Unix(1765900000, 0)
	svc.now = func() time.Time { return fixed }

	out, err := svc.ExportReflections(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, fmt.Sprintf("exports/%d/reflections-1765900000.json", userID), out.ObjectKey)
	assert.True(t, strings.HasPrefix(out.URL, "https://minio.local/"))
	assert.True(t, out.ExpiresAt.Equal(fixed.Add(15*time.Minute)))

	var doc dto.ReflectionExportDTO
	require.NoError(t, json.Unmarshal(store.objects[out.ObjectKey], &doc))
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Reflections, 2)
	assert.Equal(t, dto.ReflectionDTO{Date: "2025-12-10", Mood: 2, Note: "first"}, *doc.Reflections[0])
	assert.Equal(t, dto.ReflectionDTO{Date: "2025-12-15", Mood: 4, Note: "second"}, *doc.Reflections[1])
}

func TestExportReflections_Empty(t *testing.T) {
	db := testdb.New(t)
	userID := testdb.SeedUser(t, db, "none@example.com")
	store := newFakeObjectStore()
	svc := NewExportService(repository.NewCheckinRepo(db), store, 0)

	out, err := svc.ExportReflections(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
	assert.JSONEq(t, `{"count":0,"reflections":[]}`, string(store.objects[out.ObjectKey]))
}

func TestExportReflections_StoreFailures(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	userID := testdb.SeedUser(t, db, "fail@example.com")
	seedCheckin(t, db, userID, "2025-12-15", 4, nil)
	require.NoError(t, db.Exec("UPDATE checkins SET note = ?", util.PtrString("x")).Error)

	store := newFakeObjectStore()
	store.uploadErr = errBoom
	_, err := NewExportService(repository.NewCheckinRepo(db), store, time.Minute).ExportReflections(ctx, userID)
	assert.ErrorIs(t, err, ErrExportFailed)

	store = newFakeObjectStore()
	store.presignErr = errBoom
	_, err = NewExportService(repository.NewCheckinRepo(db), store, time.Minute).ExportReflections(ctx, userID)
	assert.ErrorIs(t, err, ErrExportFailed)
	require.Len(t, store.removed, 1)
	assert.Empty(t, store.objects)
}
