package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/phrazzld/userhub/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "", want: slog.LevelInfo},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := logger.ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesJSONAtLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", slog.String("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "value", entry["key"])
}

func TestNew_InvalidLevelWarns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_ = logger.New(&buf, "loud")

	assert.Contains(t, buf.String(), "invalid log level configured")
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Default(), logger.FromContext(context.Background()))

	fallback, _ := logger.GetTestLogger(t)
	assert.Equal(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))

	l, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(context.Background(), l)
	ctx = logger.WithRequestID(ctx, "req-123")

	assert.Equal(t, "req-123", logger.RequestIDFromContext(ctx))

	logger.FromContext(ctx).Info("handled")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0]["request_id"])
	logger.AssertLogContains(t, buf, "handled")
	logger.AssertLogNotContains(t, buf, "password")
}
