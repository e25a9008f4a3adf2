package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"

	locJSONExt = ".loc.json"
)

// encode writes v to w in the requested format.
func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q: must be %q or %q", format, outputJSON, outputYAML)
	}
}

// outputName maps a source file to its JSON loc file name:
// Strings.resx becomes Strings.loc.json, en.loc.json stays en.loc.json.
func outputName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(base), locJSONExt) {
		return base[:len(base)-len(locJSONExt)] + locJSONExt
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + locJSONExt
}

// writeAtomic replaces path with v encoded as JSON. Readers never observe a
// partially written file.
func writeAtomic(path string, v any) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if err := encode(pending, outputJSON, v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
