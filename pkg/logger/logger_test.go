package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "ads-inventory", Output: &buf})

	ctx := log.WithUserID(context.Background(), "u-1")
	ctx = log.WithRequestID(ctx, "r-1")
	log.Error(ctx, "create sale failed", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ads-inventory", entry["service"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: zerolog.WarnLevel, Output: &buf})

	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}
