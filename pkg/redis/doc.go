// Package redis connects to the Redis server that backs the shared parse
// cache.
//
// Configuration is described by Config, whose fields are populated from
// environment variables via github.com/caarlos0/env (nested under the
// LOCPARSE_ prefix by package config):
//
//	cfg := redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 10 * time.Second,
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := parsecache.NewRedisStore(client,
//		parsecache.WithRedisPrefix(cfg.KeyPrefix),
//		parsecache.WithRedisTTL(cfg.TTL),
//	)
//
// Errors wrap the underlying go-redis errors with errors.Join, so sentinels
// such as ErrRedisNotReady can be matched with errors.Is.
package redis
