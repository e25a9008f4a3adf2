package parsecache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/locparse/pkg/locfile"
	"github.com/dmitrymomot/locparse/pkg/parsecache"
)

func setupRedis(t *testing.T, opts ...parsecache.RedisOption) (*miniredis.Miniredis, *parsecache.RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, parsecache.NewRedisStore(client, opts...)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	key := parsecache.Key{FilePath: "src/Strings.resx", Newline: locfile.NewlineCrLf}

	t.Run("set and get", func(t *testing.T) {
		mr, s := setupRedis(t)

		_, ok := s.Get(ctx, key)
		assert.False(t, ok)

		want := parsecache.Entry{
			Content: "<root/>",
			File:    locfile.File{"a": {Value: "A", Comment: "c"}},
		}
		s.Set(ctx, key, want)

		got, ok := s.Get(ctx, key)
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.True(t, mr.Exists("locparse:src/Strings.resx?crlf"))
	})

	t.Run("empty file round trips as non-nil", func(t *testing.T) {
		_, s := setupRedis(t)
		s.Set(ctx, key, parsecache.Entry{Content: "{}", File: locfile.File{}})
		got, ok := s.Get(ctx, key)
		require.True(t, ok)
		assert.NotNil(t, got.File)
		assert.Empty(t, got.File)
	})

	t.Run("prefix and ttl", func(t *testing.T) {
		mr, s := setupRedis(t, parsecache.WithRedisPrefix("build:"), parsecache.WithRedisTTL(time.Minute))
		s.Set(ctx, key, parsecache.Entry{Content: "x", File: locfile.File{}})

		assert.True(t, mr.Exists("build:src/Strings.resx?crlf"))
		assert.Equal(t, time.Minute, mr.TTL("build:src/Strings.resx?crlf"))

		mr.FastForward(2 * time.Minute)
		_, ok := s.Get(ctx, key)
		assert.False(t, ok)
	})

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		mr, s := setupRedis(t)
		require.NoError(t, mr.Set("locparse:src/Strings.resx?crlf", "not json"))
		_, ok := s.Get(ctx, key)
		assert.False(t, ok)
	})

	t.Run("backend down is a miss", func(t *testing.T) {
		mr, s := setupRedis(t)
		s.Set(ctx, key, parsecache.Entry{Content: "x", File: locfile.File{}})
		mr.Close()

		_, ok := s.Get(ctx, key)
		assert.False(t, ok)
		assert.NotPanics(t, func() {
			s.Set(ctx, key, parsecache.Entry{Content: "y", File: locfile.File{}})
		})
	})
}
