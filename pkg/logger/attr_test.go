package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/locparse/pkg/logger"
)

func TestError(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.Any().(error).Error())
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.SessionID(""))
	assert.Equal(t, "abc", logger.SessionID("abc").Value.String())
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, "file", logger.FilePath("a.resx").Key)
	assert.Equal(t, "format", logger.LocFormat("json").Key)
	assert.Equal(t, "cache_key", logger.CacheKey("a.resx?none").Key)
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
}
