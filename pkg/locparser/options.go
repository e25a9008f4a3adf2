package locparser

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/locparse/pkg/locfile"
	"github.com/dmitrymomot/locparse/pkg/locjson"
	"github.com/dmitrymomot/locparse/pkg/parsecache"
	"github.com/dmitrymomot/locparse/pkg/resx"
)

// ResxReadFunc reads RESX content. resx.Read is the default.
type ResxReadFunc func(content string, opts resx.Options) (locfile.File, error)

// JSONLoadFunc decodes JSON content into generic values. locjson.Load is the default.
type JSONLoadFunc func(content string) (any, error)

// Option configures a Parser.
type Option func(*Parser)

// WithStore replaces the default unbounded in-memory store.
func WithStore(store parsecache.Store) Option {
	return func(p *Parser) {
		if store != nil {
			p.store = store
		}
	}
}

// WithLogger sets the logger for parser events and the fallback terminal.
func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRegisterer registers the parser's Prometheus collectors with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(p *Parser) { p.registerer = reg }
}

// WithResxReader overrides the RESX reader.
func WithResxReader(fn ResxReadFunc) Option {
	return func(p *Parser) {
		if fn != nil {
			p.readResx = fn
		}
	}
}

// WithJSONLoader overrides the JSON loader.
func WithJSONLoader(fn JSONLoadFunc) Option {
	return func(p *Parser) {
		if fn != nil {
			p.loadJSON = fn
		}
	}
}

// WithSchema overrides the schema JSON loc files are validated against.
func WithSchema(schema *locjson.Schema) Option {
	return func(p *Parser) {
		if schema != nil {
			p.schema = schema
		}
	}
}

// WithSessionID tags log records with a build session id. A random id is
// generated when none is set.
func WithSessionID(id string) Option {
	return func(p *Parser) {
		if id != "" {
			p.sessionID = id
		}
	}
}
