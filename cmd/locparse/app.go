package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/locparse/pkg/config"
	"github.com/dmitrymomot/locparse/pkg/locfile"
	"github.com/dmitrymomot/locparse/pkg/locparser"
	"github.com/dmitrymomot/locparse/pkg/logger"
	"github.com/dmitrymomot/locparse/pkg/parsecache"
	"github.com/dmitrymomot/locparse/pkg/redis"
	"github.com/dmitrymomot/locparse/pkg/terminal"
)

// annotationUncached marks commands that need diagnostics for every file.
// A cache hit writes no diagnostics, so such commands parse with a private
// in-memory store and never touch a shared cache.
const annotationUncached = "locparse/uncached"

// inputKey carries the file argument being processed so every log record
// made with that context is tagged with it.
type inputKey struct{}

type flags struct {
	envFiles              []string
	newline               string
	ignoreMissingComments bool
	cacheSize             int
	redisURL              string
	logLevel              string
	logFormat             string
	metricsFile           string
}

// app holds the dependencies shared by every subcommand. It is populated in
// the root command's PersistentPreRunE.
type app struct {
	flags  flags
	stdout io.Writer
	stderr io.Writer

	cfg      config.Config
	base     *slog.Logger // untagged; each component adds its own attr
	log      *slog.Logger
	parser   *locparser.Parser
	registry *prometheus.Registry
	closers  []func() error
}

// run executes the CLI with args and releases every resource it opened.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "locparse",
		Short:         "Parse and validate RESX and JSON localization files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringSliceVar(&a.flags.envFiles, "env-file", nil, "load environment from these files instead of ./.env")
	pf.StringVar(&a.flags.newline, "newline", "", "newline normalization for RESX values: none, crlf, lf or os")
	pf.BoolVar(&a.flags.ignoreMissingComments, "ignore-missing-comments", false, "do not warn about RESX entries without a comment")
	pf.IntVar(&a.flags.cacheSize, "cache-size", 0, "maximum cached files, 0 for unbounded")
	pf.StringVar(&a.flags.redisURL, "redis-url", "", "share the parse cache through this Redis server")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&a.flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newParseCmd(a),
		newValidateCmd(a),
		newWatchCmd(a),
	)
	return root
}

// init loads configuration, applies flag overrides and wires the parser.
func (a *app) init(cmd *cobra.Command) error {
	if err := config.LoadEnv(a.flags.envFiles...); err != nil {
		return err
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := a.applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	opts := append(cfg.LoggerOptions(""),
		logger.WithOutput(a.stderr),
		logger.WithContextValue("input", inputKey{}),
	)
	a.base = logger.New(opts...)
	a.log = a.base.With(logger.Component("cli"))

	var store parsecache.Store = parsecache.NewMemoryStore()
	if cmd.Annotations[annotationUncached] == "" {
		if store, err = a.newStore(cmd.Context()); err != nil {
			return err
		}
	}

	a.registry = prometheus.NewRegistry()
	a.parser = locparser.New(
		locparser.WithStore(store),
		locparser.WithLogger(a.base),
		locparser.WithRegisterer(a.registry),
	)
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("newline") {
		kind, err := locfile.ParseNewlineKind(a.flags.newline)
		if err != nil {
			return err
		}
		cfg.Newline = kind
	}
	if f.Changed("ignore-missing-comments") {
		cfg.IgnoreMissingComments = a.flags.ignoreMissingComments
	}
	if f.Changed("cache-size") {
		cfg.CacheSize = a.flags.cacheSize
	}
	if f.Changed("redis-url") {
		cfg.Redis.ConnectionURL = a.flags.redisURL
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = a.flags.logFormat
	}
	return nil
}

// newStore picks the cache backend: Redis when configured, a bounded LRU
// when a size is set, otherwise an unbounded map.
func (a *app) newStore(ctx context.Context) (parsecache.Store, error) {
	switch {
	case a.cfg.Redis.Enabled():
		client, err := redis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.log.DebugContext(ctx, "using redis parse cache", slog.String("prefix", a.cfg.Redis.KeyPrefix))
		return parsecache.NewRedisStore(client,
			parsecache.WithRedisPrefix(a.cfg.Redis.KeyPrefix),
			parsecache.WithRedisTTL(a.cfg.Redis.TTL),
			parsecache.WithRedisLogger(a.base.With(logger.Component("parsecache"))),
		), nil
	case a.cfg.CacheSize > 0:
		lru := parsecache.NewLRUStore(a.cfg.CacheSize)
		lru.OnEvict(func(key parsecache.Key, _ parsecache.Entry) {
			a.log.Debug("parse cache eviction", logger.CacheKey(key.String()))
		})
		return lru, nil
	default:
		return parsecache.NewMemoryStore(), nil
	}
}

// parseOptions builds per-file parse options from the configuration.
func (a *app) parseOptions(term terminal.Terminal) locparser.Options {
	return locparser.Options{
		Terminal:              term,
		NewlineNormalization:  a.cfg.Newline,
		IgnoreMissingComments: a.cfg.IgnoreMissingComments,
	}
}

func (a *app) finish(ctx context.Context) error {
	stats := a.parser.Stats()
	a.log.DebugContext(ctx, "parse session finished",
		logger.SessionID(a.parser.SessionID()),
		slog.Int64("parsed", stats.Parses),
		slog.Int64("cache_hits", stats.Hits),
		slog.Int64("cache_misses", stats.Misses),
		slog.Int64("invalid", stats.ValidationFailures),
	)
	if a.flags.metricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.flags.metricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
