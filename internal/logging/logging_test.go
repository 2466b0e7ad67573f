package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "info", FormatJSON)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", zap.String("activity_id", "a1"))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "shown", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "a1", entry["activity_id"])

	ts, ok := entry["ts"].(string)
	require.True(t, ok, "timestamp should be ISO8601 text")
	_, err = time.Parse("2006-01-02T15:04:05.000Z0700", ts)
	require.NoError(t, err)
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "debug", FormatConsole)
	require.NoError(t, err)

	logger.Debug("loading activities")
	require.Contains(t, buf.String(), "DEBUG")
	require.Contains(t, buf.String(), "loading activities")
}

func TestRejectsBadSettings(t *testing.T) {
	_, err := New("loud", FormatJSON)
	require.Error(t, err)

	_, err = New("info", "xml")
	require.Error(t, err)
}
