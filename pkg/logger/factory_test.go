package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locparse/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("defaults to text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")
		out := buf.String()
		assert.Contains(t, out, "level=INFO")
		assert.Contains(t, out, "msg=hello")
	})

	t.Run("json formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithJSONFormatter(),
		)
		log.Info("hello")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithLevel(slog.LevelWarn),
		)
		log.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("includes static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithJSONFormatter(),
			logger.WithAttr(logger.Component("locparser")),
		)
		log.Info("msg", logger.FilePath("strings.resx"))
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "locparser", entry["component"])
		assert.Equal(t, "strings.resx", entry["file"])
	})

	t.Run("extracts from context", func(t *testing.T) {
		buf := &bytes.Buffer{}
		type key struct{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithJSONFormatter(),
			logger.WithContextValue("session_id", key{}),
		)
		ctx := context.WithValue(context.Background(), key{}, "s-42")
		log.InfoContext(ctx, "context msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "s-42", entry["session_id"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("ci uses json at info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment("ci", "locparse"),
			logger.WithOutput(buf),
		)
		log.Debug("hidden")
		log.Info("shown")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "ci", entry["env"])
		assert.Equal(t, "locparse", entry["component"])
	})

	t.Run("development uses text at debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithEnvironment("development", ""),
			logger.WithOutput(buf),
		)
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
	})
}

func TestParseFormat(t *testing.T) {
	f, err := logger.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
