// Package terminal provides the line-oriented diagnostic sink that loc file
// parsers report warnings and errors to.
package terminal

import (
	"context"
	"log/slog"
)

// Terminal receives human-readable diagnostic lines.
type Terminal interface {
	WriteLine(msg string)
	WriteVerboseLine(msg string)
	WriteWarningLine(msg string)
	WriteErrorLine(msg string)
}

// LogTerminal forwards lines to a slog.Logger at the matching level.
type LogTerminal struct {
	log *slog.Logger
	ctx context.Context
}

// NewLogTerminal returns a terminal backed by log. A nil logger uses slog.Default.
func NewLogTerminal(log *slog.Logger) *LogTerminal {
	if log == nil {
		log = slog.Default()
	}
	return &LogTerminal{log: log, ctx: context.Background()}
}

// WithContext returns a copy that logs with ctx, so context extractors
// registered on the logger see it.
func (t *LogTerminal) WithContext(ctx context.Context) *LogTerminal {
	if ctx == nil {
		ctx = context.Background()
	}
	return &LogTerminal{log: t.log, ctx: ctx}
}

func (t *LogTerminal) WriteLine(msg string)        { t.log.InfoContext(t.ctx, msg) }
func (t *LogTerminal) WriteVerboseLine(msg string) { t.log.DebugContext(t.ctx, msg) }
func (t *LogTerminal) WriteWarningLine(msg string) { t.log.WarnContext(t.ctx, msg) }
func (t *LogTerminal) WriteErrorLine(msg string)   { t.log.ErrorContext(t.ctx, msg) }

type nopTerminal struct{}

func (nopTerminal) WriteLine(string)        {}
func (nopTerminal) WriteVerboseLine(string) {}
func (nopTerminal) WriteWarningLine(string) {}
func (nopTerminal) WriteErrorLine(string)   {}

// Nop returns a terminal that discards every line.
func Nop() Terminal { return nopTerminal{} }

type tee []Terminal

func (t tee) WriteLine(msg string) {
	for _, term := range t {
		term.WriteLine(msg)
	}
}

func (t tee) WriteVerboseLine(msg string) {
	for _, term := range t {
		term.WriteVerboseLine(msg)
	}
}

func (t tee) WriteWarningLine(msg string) {
	for _, term := range t {
		term.WriteWarningLine(msg)
	}
}

func (t tee) WriteErrorLine(msg string) {
	for _, term := range t {
		term.WriteErrorLine(msg)
	}
}

// Tee writes every line to all non-nil terminals in order.
func Tee(terms ...Terminal) Terminal {
	out := make(tee, 0, len(terms))
	for _, term := range terms {
		if term != nil {
			out = append(out, term)
		}
	}
	return out
}
