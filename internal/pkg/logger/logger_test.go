package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestContextHandler_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	l.InfoContext(WithTraceID(context.Background(), "abc"), "hello")
	l.InfoContext(context.Background(), "no trace")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "abc", lines[0][TraceIDKey])
	assert.NotContains(t, lines[1], TraceIDKey)
}

func TestTeeHandler_RemoteOnlyGetsTracedRecords(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{tee})

	l.InfoContext(WithTraceID(context.Background(), "t-1"), "traced")
	l.Info("untraced")

	assert.Len(t, decodeLines(t, &local), 2)
	remoteLines := decodeLines(t, &remote)
	require.Len(t, remoteLines, 1)
	assert.Equal(t, "traced", remoteLines[0]["msg"])
}

func TestTeeHandler_WithAttrsPropagates(t *testing.T) {
	var a, b bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{log.NewJSONHandler(&a, nil), log.NewJSONHandler(&b, nil)}}
	log.New(tee).With("component", "job").Info("x")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		lines := decodeLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "job", lines[0]["component"])
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, log.LevelError, ParseLevel(" error "))
	assert.Equal(t, log.LevelInfo, ParseLevel(""))
	assert.Equal(t, log.LevelInfo, ParseLevel("verbose"))
}
