// Package locjson loads JSON loc manifests and validates them against the
// loc file schema.
//
// Loading and validation are separate steps. A syntax error is fatal; a
// schema violation is reported and the loaded file is still usable.
package locjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/locparse/pkg/locfile"
)

// SchemaKey is the conventional top-level property pointing editors at the schema.
const SchemaKey = "$schema"

// Load decodes JSON content into generic values (maps, slices, strings,
// float64, bool, nil). A leading byte order mark is ignored.
func Load(content string) (any, error) {
	content = strings.TrimPrefix(content, "\uFEFF")

	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, col := lineCol(content, syntaxErr.Offset)
			return nil, fmt.Errorf("%w: line %d, column %d: %w", ErrFailedToParseJSON, line, col, err)
		}
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return raw, nil
}

// Parse loads content and converts it with ToFile without schema validation.
func Parse(content string) (locfile.File, error) {
	raw, err := Load(content)
	if err != nil {
		return nil, err
	}
	return ToFile(raw), nil
}

// ToFile converts loaded JSON into a loc file, keeping whatever is usable.
// A non-object root yields an empty file; entries that are not objects and
// fields that are not strings are skipped; the $schema property is dropped.
func ToFile(raw any) locfile.File {
	file := make(locfile.File)
	obj, ok := raw.(map[string]any)
	if !ok {
		return file
	}

	for name, v := range obj {
		if name == SchemaKey {
			continue
		}
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		var s locfile.LocalizedString
		if value, ok := entry["value"].(string); ok {
			s.Value = value
		}
		if comment, ok := entry["comment"].(string); ok {
			s.Comment = comment
		}
		file[name] = s
	}
	return file
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(content string, offset int64) (int, int) {
	if offset > int64(len(content)) {
		offset = int64(len(content))
	}
	before := content[:offset]
	line := strings.Count(before, "\n") + 1
	col := int(offset) - strings.LastIndex(before, "\n")
	return line, col
}
