package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, Init(&buf, "debug", false))

	ctx := WithRequestID(context.Background(), "req-1")
	Warn(ctx, "metadata fetch failed", slog.String("url", "example.com"), Err(errors.New("timeout")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "metadata fetch failed", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "example.com", line["url"])
	assert.Equal(t, "timeout", line["error"])
}

func TestInitLevelFilter(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, Init(&buf, "warn", true))

	Info(context.Background(), "dropped")
	assert.Empty(t, buf.String())

	Error(context.Background(), "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("error")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
