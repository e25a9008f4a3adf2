package locparser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/locparse/pkg/locfile"
	"github.com/dmitrymomot/locparse/pkg/locjson"
	"github.com/dmitrymomot/locparse/pkg/logger"
	"github.com/dmitrymomot/locparse/pkg/parsecache"
	"github.com/dmitrymomot/locparse/pkg/resx"
	"github.com/dmitrymomot/locparse/pkg/terminal"
)

// Options describes a single parse request.
type Options struct {
	// Terminal receives diagnostics. Nil falls back to the parser's logger.
	Terminal terminal.Terminal
	FilePath string
	Content  string
	// NewlineNormalization applies to RESX values and is part of the cache key.
	NewlineNormalization locfile.NewlineKind
	// IgnoreMissingComments suppresses warnings for RESX entries without a comment.
	IgnoreMissingComments bool
}

// Stats is a snapshot of parser activity.
type Stats struct {
	Hits               int64
	Misses             int64
	Parses             int64
	ValidationFailures int64
}

// Parser parses loc files and memoizes the results. It is safe for
// concurrent use when its Store is.
type Parser struct {
	store      parsecache.Store
	schema     *locjson.Schema
	readResx   ResxReadFunc
	loadJSON   JSONLoadFunc
	log        *slog.Logger
	registerer prometheus.Registerer
	sessionID  string
	metrics    *metrics

	hits               atomic.Int64
	misses             atomic.Int64
	parses             atomic.Int64
	validationFailures atomic.Int64
}

// New creates a Parser backed by an unbounded parsecache.MemoryStore unless
// WithStore says otherwise.
func New(opts ...Option) *Parser {
	p := &Parser{
		store:    parsecache.NewMemoryStore(),
		readResx: resx.Read,
		loadJSON: locjson.Load,
		log:      logger.Nop(),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.schema == nil {
		p.schema = locjson.DefaultSchema()
	}
	if p.sessionID == "" {
		p.sessionID = uuid.NewString()
	}
	p.log = p.log.With(logger.Component("locparser"), logger.SessionID(p.sessionID))

	if p.registerer != nil {
		if err := p.metrics.register(p.registerer); err != nil {
			p.log.Warn("metrics registration failed", logger.Error(err))
		}
	}
	return p
}

// SessionID returns the build session id attached to log records.
func (p *Parser) SessionID() string {
	return p.sessionID
}

// Stats returns counters accumulated since the parser was created.
func (p *Parser) Stats() Stats {
	return Stats{
		Hits:               p.hits.Load(),
		Misses:             p.misses.Load(),
		Parses:             p.parses.Load(),
		ValidationFailures: p.validationFailures.Load(),
	}
}

// Parse returns the parsed loc file for opts.Content, reusing the cached
// result when the content is unchanged since the last call for the same path
// and newline mode. The returned file is shared with the cache; callers that
// modify it should work on a Clone.
func (p *Parser) Parse(ctx context.Context, opts Options) (locfile.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	key := parsecache.Key{FilePath: opts.FilePath, Newline: opts.NewlineNormalization}
	if entry, ok := p.store.Get(ctx, key); ok && entry.Content == opts.Content {
		p.hits.Add(1)
		p.metrics.cacheHits.Inc()
		p.log.DebugContext(ctx, "loc file cache hit", logger.CacheKey(key.String()))
		return entry.File, nil
	}
	p.misses.Add(1)
	p.metrics.cacheMisses.Inc()

	term := opts.Terminal
	if term == nil {
		term = terminal.NewLogTerminal(p.log).WithContext(ctx)
	}

	start := time.Now()
	format := FormatForPath(opts.FilePath)

	var (
		file locfile.File
		err  error
	)
	switch format {
	case FormatResx:
		file, err = p.readResx(opts.Content, resx.Options{
			FilePath:             opts.FilePath,
			Terminal:             term,
			NewlineNormalization: opts.NewlineNormalization,
			WarnOnMissingComment: !opts.IgnoreMissingComments,
		})
	default:
		file, err = p.parseJSON(ctx, term, opts)
	}
	if err != nil {
		p.log.DebugContext(ctx, "loc file parse failed",
			logger.FilePath(opts.FilePath),
			logger.LocFormat(format.String()),
			logger.Error(err),
		)
		if format == FormatResx {
			// RESX errors already carry path(line,col).
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", opts.FilePath, err)
	}
	if file == nil {
		file = make(locfile.File)
	}

	p.parses.Add(1)
	p.metrics.parses.WithLabelValues(format.String()).Inc()
	p.store.Set(ctx, key, parsecache.Entry{Content: opts.Content, File: file})

	p.log.DebugContext(ctx, "loc file parsed",
		logger.FilePath(opts.FilePath),
		logger.LocFormat(format.String()),
		slog.Int("strings", len(file)),
		logger.Duration(time.Since(start)),
	)
	return file, nil
}

// parseJSON loads and validates a JSON loc file. Only load errors are
// returned; schema violations are written to term.
func (p *Parser) parseJSON(ctx context.Context, term terminal.Terminal, opts Options) (locfile.File, error) {
	raw, err := p.loadJSON(opts.Content)
	if err != nil {
		return nil, err
	}

	if err := p.schema.Validate(raw, opts.FilePath); err != nil {
		p.validationFailures.Add(1)
		p.metrics.validationFailures.Inc()
		term.WriteErrorLine(fmt.Sprintf("The loc file is invalid. Error: %s", err))
		p.log.DebugContext(ctx, "loc file failed schema validation", logger.FilePath(opts.FilePath))
	}
	return locjson.ToFile(raw), nil
}

// ParseFile reads path and parses it. opts.FilePath and opts.Content are
// overwritten.
func (p *Parser) ParseFile(ctx context.Context, path string, opts Options) (locfile.File, error) {
	if path == "" {
		return nil, ErrEmptyFilePath
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedReadFile, err)
	}
	opts.FilePath = path
	opts.Content = string(content)
	return p.Parse(ctx, opts)
}
