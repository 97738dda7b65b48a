package wire

import (
	"MindGarden/internal/api/config"
	"MindGarden/internal/pkg/testdb"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApplication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)

	cfg := &config.Config{}
	cfg.MinIO.PresignMinute = 15
	cfg.Job.InsightRecomputeSpec = "@every 10m"

	app, err := BuildApplication(db, cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Router)
	require.NotNil(t, app.CronMgr)
	assert.Nil(t, app.KafkaManager)
	assert.Same(t, db, app.DB)
	require.NoError(t, app.CronMgr.RegisterJobs())

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		DBOK   bool   `json:"db_ok"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.DBOK)
}
