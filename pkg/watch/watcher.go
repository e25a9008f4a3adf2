package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/locparse/pkg/logger"
)

// Handler receives the path and current content of a changed file.
type Handler func(ctx context.Context, path, content string)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for watcher events.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// Watcher dispatches content changes for a fixed set of files.
type Watcher struct {
	files map[string]struct{}
	dirs  []string
	log   *slog.Logger
}

// New prepares a watcher for paths. Paths are resolved to absolute form;
// the files themselves need not exist yet.
func New(paths []string, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	w := &Watcher{
		files: make(map[string]struct{}, len(paths)),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Join(ErrFailedToResolve, err)
		}
		w.files[abs] = struct{}{}
		if dir := filepath.Dir(abs); !slices.Contains(w.dirs, dir) {
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// Files returns the watched file paths in absolute form.
func (w *Watcher) Files() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Run watches until ctx is cancelled, calling h for every create or write of
// a watched file. Read failures are logged and skipped.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrWatcherUnavailable, err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return errors.Join(ErrFailedToWatch, err)
		}
	}
	w.log.InfoContext(ctx, "watching loc files",
		slog.Int("files", len(w.files)),
		slog.Int("dirs", len(w.dirs)),
	)

	for {
		select {
		case <-ctx.Done():
			w.log.DebugContext(ctx, "watcher stopped")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event, h)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WarnContext(ctx, "file watcher error", logger.Error(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event, h Handler) {
	path := filepath.Clean(event.Name)
	if _, ok := w.files[path]; !ok {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		w.log.DebugContext(ctx, "ignoring file event",
			logger.FilePath(path),
			slog.String("op", event.Op.String()),
		)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		// The file may have been replaced again between the event and the read.
		w.log.WarnContext(ctx, "failed to read changed file", logger.FilePath(path), logger.Error(err))
		return
	}
	h(ctx, path, string(content))
}
