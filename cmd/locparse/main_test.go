package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/locparse/pkg/locfile"
)

const (
	validResx = `<?xml version="1.0" encoding="utf-8"?>
<root>
  <data name="greeting" xml:space="preserve">
    <value>Hello
World</value>
    <comment>Shown on the home page</comment>
  </data>
</root>`
	uncommentedResx = `<root><data name="bye"><value>Bye</value></data></root>`
	validJSON       = `{"$schema": "locfile.schema.json", "title": {"value": "Title", "comment": "Window title"}}`
	invalidJSON     = `{"title": {"comment": "no value"}}`
	brokenJSON      = `{"title": `
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestParseCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Strings.resx":     validResx,
		"app.loc.json":     validJSON,
		"broken.json":      brokenJSON,
		"Uncommented.RESX": uncommentedResx,
	})
	resxPath := filepath.Join(dir, "Strings.resx")
	jsonPath := filepath.Join(dir, "app.loc.json")

	t.Run("json to stdout", func(t *testing.T) {
		stdout, _, err := execute(t, "parse", "--newline", "crlf", resxPath, jsonPath)
		require.NoError(t, err)

		var got map[string]locfile.File
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, map[string]locfile.File{
			resxPath: {"greeting": {Value: "Hello\r\nWorld", Comment: "Shown on the home page"}},
			jsonPath: {"title": {Value: "Title", Comment: "Window title"}},
		}, got)
	})

	t.Run("yaml to stdout", func(t *testing.T) {
		stdout, _, err := execute(t, "parse", "-o", "yaml", jsonPath)
		require.NoError(t, err)

		var got map[string]locfile.File
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, "Title", got[jsonPath]["title"].Value)
	})

	t.Run("unknown output format", func(t *testing.T) {
		_, _, err := execute(t, "parse", "-o", "toml", jsonPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})

	t.Run("write to directory", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "gen")
		stdout, _, err := execute(t, "parse", "--out", out, resxPath, jsonPath, filepath.Join(dir, "Uncommented.RESX"))
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 3)

		data, err := os.ReadFile(filepath.Join(out, "Strings.loc.json"))
		require.NoError(t, err)
		var got locfile.File
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "Hello\nWorld", got["greeting"].Value)

		assert.FileExists(t, filepath.Join(out, "app.loc.json"))
		assert.FileExists(t, filepath.Join(out, "Uncommented.loc.json"))

		// The generated files are valid JSON loc files themselves.
		_, stderr, err := execute(t, "validate", filepath.Join(out, "Strings.loc.json"))
		require.NoError(t, err, stderr)
	})

	t.Run("syntax error fails", func(t *testing.T) {
		stdout, _, err := execute(t, "parse", jsonPath, filepath.Join(dir, "broken.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.json")
		assert.Empty(t, stdout)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, _, err := execute(t, "parse", filepath.Join(dir, "nope.json"))
		require.Error(t, err)
	})

	t.Run("requires arguments", func(t *testing.T) {
		_, _, err := execute(t, "parse")
		require.Error(t, err)
	})

	t.Run("invalid newline flag", func(t *testing.T) {
		_, _, err := execute(t, "parse", "--newline", "cr", jsonPath)
		require.ErrorIs(t, err, locfile.ErrUnknownNewlineKind)
	})
}

func TestValidateCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.resx":          validResx,
		"uncommented.resx": uncommentedResx,
		"ok.loc.json":      validJSON,
		"invalid.loc.json": invalidJSON,
		"broken.loc.json":  brokenJSON,
	})
	path := func(name string) string { return filepath.Join(dir, name) }

	t.Run("valid files", func(t *testing.T) {
		stdout, _, err := execute(t, "validate", path("ok.resx"), path("ok.loc.json"))
		require.NoError(t, err)
		assert.Contains(t, stdout, "ok   "+path("ok.resx")+": 1 string(s)")
		assert.Contains(t, stdout, "ok   "+path("ok.loc.json")+": 1 string(s)")
	})

	t.Run("schema violation", func(t *testing.T) {
		stdout, stderr, err := execute(t, "validate", path("invalid.loc.json"), path("ok.resx"))
		require.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, stdout, "FAIL "+path("invalid.loc.json")+": 1 error(s)")
		assert.Contains(t, stdout, "ok   "+path("ok.resx"))
		assert.Equal(t, 1, strings.Count(stderr, "The loc file is invalid. Error:"))
	})

	t.Run("syntax error", func(t *testing.T) {
		stdout, _, err := execute(t, "validate", path("broken.loc.json"))
		require.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, stdout, "FAIL "+path("broken.loc.json"))
	})

	t.Run("repeated argument is reported once", func(t *testing.T) {
		stdout, _, err := execute(t, "validate", path("invalid.loc.json"), path("invalid.loc.json"))
		require.ErrorIs(t, err, errValidationFailed)
		assert.Equal(t, 1, strings.Count(stdout, path("invalid.loc.json")))
		assert.NotContains(t, stdout, "ok   ")
	})

	t.Run("shared cache does not hide failures", func(t *testing.T) {
		mr := miniredis.RunT(t)
		url := "redis://" + mr.Addr() + "/0"

		// Warm the shared cache with the invalid file.
		_, _, err := execute(t, "parse", "--redis-url", url, path("invalid.loc.json"))
		require.NoError(t, err)

		for range 2 {
			stdout, _, err := execute(t, "validate", "--redis-url", url, path("invalid.loc.json"))
			require.ErrorIs(t, err, errValidationFailed)
			assert.Contains(t, stdout, "FAIL "+path("invalid.loc.json")+": 1 error(s)")
		}
	})

	t.Run("missing comments", func(t *testing.T) {
		stdout, stderr, err := execute(t, "validate", path("uncommented.resx"))
		require.NoError(t, err)
		assert.Contains(t, stdout, "1 warning(s)")
		assert.Contains(t, stderr, "Missing string comment")

		_, _, err = execute(t, "validate", "--strict", path("uncommented.resx"))
		require.ErrorIs(t, err, errValidationFailed)

		stdout, _, err = execute(t, "validate", "--strict", "--ignore-missing-comments", path("uncommented.resx"))
		require.NoError(t, err)
		assert.NotContains(t, stdout, "warning")
	})
}

func TestGlobalFlags(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.loc.json": validJSON, "b.loc.json": validJSON})
	a := filepath.Join(dir, "a.loc.json")
	b := filepath.Join(dir, "b.loc.json")

	t.Run("redis cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		url := "redis://" + mr.Addr() + "/0"

		_, _, err := execute(t, "parse", "--redis-url", url, a)
		require.NoError(t, err)
		assert.True(t, mr.Exists("locparse:"+a+"?none"))

		// A second process answers from the shared cache.
		_, stderr, err := execute(t, "parse", "--redis-url", url, "--log-level", "debug", a)
		require.NoError(t, err)
		assert.Contains(t, stderr, "loc file cache hit")
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, _, err := execute(t, "parse", "--redis-url", "redis://"+addr+"/0", a)
		require.Error(t, err)
	})

	t.Run("metrics file", func(t *testing.T) {
		metrics := filepath.Join(t.TempDir(), "locparse.prom")
		_, _, err := execute(t, "parse", "--cache-size", "1", "--metrics-file", metrics, a, b)
		require.NoError(t, err)

		data, err := os.ReadFile(metrics)
		require.NoError(t, err)
		assert.Contains(t, string(data), `locparse_parses_total{format="json"} 2`)
		assert.Contains(t, string(data), "locparse_cache_misses_total 2")
	})

	t.Run("json logs", func(t *testing.T) {
		_, stderr, err := execute(t, "parse", "--log-format", "json", "--log-level", "debug", a)
		require.NoError(t, err)

		line, _, _ := strings.Cut(stderr, "\n")
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), stderr)
		assert.Equal(t, "development", rec["env"])
		assert.Equal(t, "DEBUG", rec["level"])
	})

	t.Run("invalid log format", func(t *testing.T) {
		_, _, err := execute(t, "parse", "--log-format", "xml", a)
		require.Error(t, err)
	})

	t.Run("env file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("LOCPARSE_TEST_UNUSED=1\n"), 0o600))

		_, _, err := execute(t, "parse", "--env-file", envFile, a)
		require.NoError(t, err)

		_, _, err = execute(t, "parse", "--env-file", filepath.Join(t.TempDir(), "missing.env"), a)
		require.Error(t, err)
	})
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"Strings.resx":     "Strings.loc.json",
		"dir/Strings.RESX": "Strings.loc.json",
		"app.loc.json":     "app.loc.json",
		"app.LOC.JSON":     "app.loc.json",
		"strings.json":     "strings.loc.json",
		"README":           "README.loc.json",
	}
	for in, want := range tests {
		assert.Equal(t, want, outputName(in), in)
	}
}
