package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer, level LogLevel) *StructuredLogger {
	return NewLogger(&Config{Level: level, Format: "json", Output: buf})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, nil, "warn")
	logger.Error(ctx, errors.New("boom"), "error")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["msg"])
	assert.Equal(t, "boom", entries[1]["error"])
}

func TestWithAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := jsonLogger(&buf, LevelDebug).WithComponent("canvas").With("project", "Site")

	logger.Info(context.Background(), "component added", "kind", "hero")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "canvas", entries[0]["component"])
	assert.Equal(t, "Site", entries[0]["project"])
	assert.Equal(t, "hero", entries[0]["kind"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop().Error(context.Background(), errors.New("x"), "dropped")
	})
}

func TestSanitizeForLog(t *testing.T) {
	assert.Equal(t, "[REDACTED]", SanitizeForLog("my secret value"))
	assert.Equal(t, "hello", SanitizeForLog("hello"))
	long := strings.Repeat("a", 1200)
	assert.True(t, strings.HasSuffix(SanitizeForLog(long), "...[TRUNCATED]"))
}

func TestSanitizeFields(t *testing.T) {
	fields := SanitizeFields(map[string]any{"jwtSecret": "hunter2", "enabled": true})

	got := map[string]any{}
	for i := 0; i+1 < len(fields); i += 2 {
		got[fields[i].(string)] = fields[i+1]
	}
	assert.Equal(t, "[REDACTED]", got["jwtSecret"])
	assert.Equal(t, true, got["enabled"])
}

func TestPerfLogger(t *testing.T) {
	var buf bytes.Buffer
	op := StartOperation(jsonLogger(&buf, LevelInfo), "export")
	op.End(context.Background())

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "export", entries[0]["operation"])
	assert.Contains(t, entries[0], "duration_ms")
}
