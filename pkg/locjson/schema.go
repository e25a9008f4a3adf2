package locjson

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed locfile.schema.json
var locFileSchema []byte

// namePattern restricts string names to identifiers usable from generated code.
var namePattern = regexp.MustCompile(`^[A-Za-z_][0-9A-Za-z_]*$`)

// ValidationError describes one schema violation.
type ValidationError struct {
	// Field is a JSON pointer to the offending value ("/" for the root).
	Field   string
	Message string
}

// ValidationErrors collects every violation found in a file.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrInvalidLocFile
}

// Has reports whether any violation points at field.
func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err, if any.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Schema validates loaded JSON loc files.
type Schema struct {
	root *openapi3.Schema
}

var defaultSchema = sync.OnceValue(func() *Schema {
	s, err := CompileSchema(locFileSchema)
	if err != nil {
		panic(err)
	}
	return s
})

// DefaultSchema returns the built-in loc file schema.
func DefaultSchema() *Schema {
	return defaultSchema()
}

// CompileSchema builds a Schema from a JSON Schema document. Only the
// OpenAPI-compatible subset of JSON Schema is understood.
func CompileSchema(data []byte) (*Schema, error) {
	var root openapi3.Schema
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Join(ErrInvalidSchema, err)
	}
	return &Schema{root: &root}, nil
}

// Validate checks raw (as returned by Load) against the schema. The
// returned error wraps ValidationErrors and matches ErrInvalidLocFile.
func (s *Schema) Validate(raw any, filePath string) error {
	var verrs ValidationErrors

	if err := s.root.VisitJSON(raw, openapi3.MultiErrors()); err != nil {
		verrs = append(verrs, flatten(err)...)
	}

	if obj, ok := raw.(map[string]any); ok {
		names := make([]string, 0, len(obj))
		for name := range obj {
			if name != SchemaKey && !namePattern.MatchString(name) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			verrs = append(verrs, ValidationError{
				Field:   pointer([]string{name}),
				Message: fmt.Sprintf("string name %q must match %s", name, namePattern),
			})
		}
	}

	if len(verrs) == 0 {
		return nil
	}
	if filePath == "" {
		return verrs
	}
	return fmt.Errorf("%s: %w", filePath, verrs)
}

func flatten(err error) ValidationErrors {
	var me openapi3.MultiError
	if errors.As(err, &me) {
		var out ValidationErrors
		for _, e := range me {
			out = append(out, flatten(e)...)
		}
		return out
	}

	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		msg := se.Reason
		if msg == "" {
			msg = se.Error()
		}
		return ValidationErrors{{Field: pointer(se.JSONPointer()), Message: msg}}
	}
	return ValidationErrors{{Field: "/", Message: err.Error()}}
}

func pointer(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	escaped := make([]string, len(path))
	for i, p := range path {
		escaped[i] = strings.NewReplacer("~", "~0", "/", "~1").Replace(p)
	}
	return "/" + strings.Join(escaped, "/")
}
