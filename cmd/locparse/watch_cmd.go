package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/locparse/pkg/logger"
	"github.com/dmitrymomot/locparse/pkg/terminal"
	"github.com/dmitrymomot/locparse/pkg/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE...",
		Short: "Parse loc files and re-parse them whenever they change",
		Long: `Parses every file once, then keeps watching and re-parses a file each
time it is written. Unchanged content is served from the parse cache.
Stops on interrupt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := watch.New(args, watch.WithLogger(a.base.With(logger.Component("watch"))))
			if err != nil {
				return err
			}

			results, err := a.parseAll(ctx, w.Files(), 0)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Err == nil {
					a.log.InfoContext(ctx, "loc file parsed", logger.FilePath(r.Path), slog.Int("strings", len(r.File)))
				}
			}

			return w.Run(ctx, func(ctx context.Context, path, content string) {
				ctx = context.WithValue(ctx, inputKey{}, path)
				before := a.parser.Stats()

				opts := a.parseOptions(terminal.NewLogTerminal(a.log).WithContext(ctx))
				opts.FilePath = path
				opts.Content = content
				file, err := a.parser.Parse(ctx, opts)
				if err != nil {
					a.log.ErrorContext(ctx, err.Error())
					return
				}

				a.log.InfoContext(ctx, "loc file changed",
					slog.Int("strings", len(file)),
					slog.Bool("cached", a.parser.Stats().Hits > before.Hits),
				)
			})
		},
	}
}
