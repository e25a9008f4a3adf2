package watch

import "errors"

var (
	ErrNoPaths            = errors.New("no paths to watch")
	ErrFailedToWatch      = errors.New("failed to watch directory")
	ErrFailedToResolve    = errors.New("failed to resolve watched path")
	ErrWatcherUnavailable = errors.New("file watcher unavailable")
)
