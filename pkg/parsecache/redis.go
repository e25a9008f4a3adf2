package parsecache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/locparse/pkg/logger"
)

const (
	DefaultRedisPrefix = "locparse:"
	DefaultRedisTTL    = 24 * time.Hour
)

// RedisStore shares parse results between build processes. Entries are
// JSON-encoded under prefix+Key.String() and expire after the TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix. Defaults to DefaultRedisPrefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRedisTTL sets entry expiration. Zero keeps entries forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// WithRedisLogger sets the logger used to report backend failures.
func WithRedisLogger(log *slog.Logger) RedisOption {
	return func(s *RedisStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewRedisStore wraps an existing client. The store does not own the client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: DefaultRedisPrefix,
		ttl:    DefaultRedisTTL,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(k Key) string {
	return s.prefix + k.String()
}

func (s *RedisStore) Get(ctx context.Context, key Key) (Entry, bool) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false
	}
	if err != nil {
		s.log.WarnContext(ctx, "redis get failed", logger.CacheKey(key.String()), logger.Error(err))
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.log.WarnContext(ctx, "discarding undecodable cache entry", logger.CacheKey(key.String()), logger.Error(err))
		return Entry{}, false
	}
	if e.File == nil {
		return Entry{}, false
	}
	return e, true
}

func (s *RedisStore) Set(ctx context.Context, key Key, entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		s.log.WarnContext(ctx, "cache entry marshal failed", logger.CacheKey(key.String()), logger.Error(err))
		return
	}
	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		s.log.WarnContext(ctx, "redis set failed", logger.CacheKey(key.String()), logger.Error(err))
	}
}
