package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Debug("hidden")
	logger.Info("listening", "addr", "127.0.0.1:8000")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "listening", entry["msg"])
	assert.Equal(t, "127.0.0.1:8000", entry["addr"])
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept", "path", "/")
	assert.Contains(t, buf.String(), "msg=kept")
	assert.Contains(t, buf.String(), "path=/")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("xml"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("nothing", "k", 1) })
}

func TestNew_NilOutputUsesStderr(t *testing.T) {
	logger := New(Config{Format: FormatJSON})
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
}
