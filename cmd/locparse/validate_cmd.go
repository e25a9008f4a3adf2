package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	var (
		concurrency int
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check loc files and report diagnostics",
		Long: `Parses every file and prints one status line per file.

Exits non-zero when any file fails to parse or reports an error. With
--strict, warnings (such as RESX entries missing a comment) fail too.
Files are always parsed afresh; the shared Redis cache is not consulted.`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{annotationUncached: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.parseAll(cmd.Context(), uniquePaths(args), concurrency)
			if err != nil {
				return err
			}

			failed := 0
			out := cmd.OutOrStdout()
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", r.Path, r.Err)
				case r.Errors > 0 || (strict && r.Warnings > 0):
					failed++
					fmt.Fprintf(out, "FAIL %s: %d error(s), %d warning(s)\n", r.Path, r.Errors, r.Warnings)
				case r.Warnings > 0:
					fmt.Fprintf(out, "ok   %s: %d string(s), %d warning(s)\n", r.Path, len(r.File), r.Warnings)
				default:
					fmt.Fprintf(out, "ok   %s: %d string(s)\n", r.Path, len(r.File))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d file(s)", errValidationFailed, failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "files parsed in parallel, 0 for GOMAXPROCS")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")
	return cmd
}
