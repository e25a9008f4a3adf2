package main

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/locparse/pkg/locfile"
	"github.com/dmitrymomot/locparse/pkg/terminal"
)

// result is the outcome of parsing one file.
type result struct {
	Path     string
	File     locfile.File
	Err      error
	Errors   int
	Warnings int
}

// parseAll parses paths concurrently, at most limit at a time. Per-file
// failures are recorded in the results; the returned error is only set when
// ctx is cancelled.
func (a *app) parseAll(ctx context.Context, paths []string, limit int) ([]result, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.parseOne(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *app) parseOne(ctx context.Context, path string) result {
	ctx = context.WithValue(ctx, inputKey{}, path)
	buf := terminal.NewBuffer()
	term := terminal.Tee(terminal.NewLogTerminal(a.log).WithContext(ctx), buf)

	file, err := a.parser.ParseFile(ctx, path, a.parseOptions(term))
	if err != nil {
		a.log.ErrorContext(ctx, err.Error())
	}
	return result{
		Path:     path,
		File:     file,
		Err:      err,
		Errors:   buf.ErrorCount(),
		Warnings: buf.WarningCount(),
	}
}

// uniquePaths drops repeated arguments, keeping the first occurrence. A
// repeat would be a cache hit and report no diagnostics.
func uniquePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
