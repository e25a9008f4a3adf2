// Package watch re-reads loc files when they change on disk.
//
// fsnotify does not reliably follow single files across editor save
// strategies (truncate-and-write, write-to-temp-then-rename), so the watcher
// subscribes to each file's parent directory and filters events by path:
//
//	w, err := watch.New([]string{"strings/en.resx"}, watch.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	err = w.Run(ctx, func(ctx context.Context, path, content string) {
//		file, err := parser.Parse(ctx, locparser.Options{FilePath: path, Content: content})
//		...
//	})
//
// Run blocks until the context is cancelled. Handlers run sequentially on the
// watcher goroutine.
package watch
