package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/locparse/pkg/locfile"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		outputFormat string
		outDir       string
		concurrency  int
	)

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse loc files and print the normalized result",
		Long: `Parses RESX and JSON loc files into name -> {value, comment} maps.

Output is keyed by file path and printed to stdout, unless --out is set, in
which case each file is written as <name>.loc.json into that directory.
Files ending in .resx (any case) are read as RESX; everything else as JSON.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				// Reject a bad format before doing any work.
				if err := encode(io.Discard, outputFormat, struct{}{}); err != nil {
					return err
				}
			}

			results, err := a.parseAll(cmd.Context(), args, concurrency)
			if err != nil {
				return err
			}

			var errs []error
			parsed := make(map[string]locfile.File, len(results))
			for _, r := range results {
				if r.Err != nil {
					errs = append(errs, r.Err)
					continue
				}
				parsed[r.Path] = r.File
			}
			if err := errors.Join(errs...); err != nil {
				return err
			}

			if outDir == "" {
				return encode(cmd.OutOrStdout(), outputFormat, parsed)
			}
			if err := ensureDir(outDir); err != nil {
				return err
			}
			seen := make(map[string]string, len(results))
			for _, r := range results {
				name := outputName(r.Path)
				if prev, ok := seen[name]; ok {
					return fmt.Errorf("%s and %s both map to %s", prev, r.Path, name)
				}
				seen[name] = r.Path
			}
			for _, r := range results {
				dst := filepath.Join(outDir, outputName(r.Path))
				if err := writeAtomic(dst, r.File); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dst)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output-format", "o", outputJSON, "stdout format: json or yaml")
	cmd.Flags().StringVar(&outDir, "out", "", "write <name>.loc.json files into this directory")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "files parsed in parallel, 0 for GOMAXPROCS")
	return cmd
}
