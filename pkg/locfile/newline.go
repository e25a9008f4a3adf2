package locfile

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

// NewlineKind selects how line endings in parsed text are canonicalized.
type NewlineKind string

const (
	// NewlineNone leaves line endings untouched.
	NewlineNone NewlineKind = ""
	// NewlineCrLf converts every line ending to "\r\n".
	NewlineCrLf NewlineKind = "\r\n"
	// NewlineLf converts every line ending to "\n".
	NewlineLf NewlineKind = "\n"
	// NewlineOsDefault converts to the platform convention.
	NewlineOsDefault NewlineKind = "os"
)

var newlinePattern = regexp.MustCompile("\r\n|\n\r|\r|\n")

// ParseNewlineKind resolves a textual mode name. Accepted names are "none"
// (or empty), "crlf", "lf" and "os", compared case-insensitively.
func ParseNewlineKind(s string) (NewlineKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NewlineNone, nil
	case "crlf":
		return NewlineCrLf, nil
	case "lf":
		return NewlineLf, nil
	case "os":
		return NewlineOsDefault, nil
	default:
		return NewlineNone, fmt.Errorf("%w: %q", ErrUnknownNewlineKind, s)
	}
}

// String returns the mode name used in configuration and cache keys.
func (k NewlineKind) String() string {
	switch k {
	case NewlineNone:
		return "none"
	case NewlineCrLf:
		return "crlf"
	case NewlineLf:
		return "lf"
	case NewlineOsDefault:
		return "os"
	default:
		return fmt.Sprintf("NewlineKind(%q)", string(k))
	}
}

// Newline returns the literal line terminator for the mode.
// NewlineNone has no terminator and returns an empty string.
func (k NewlineKind) Newline() string {
	switch k {
	case NewlineCrLf:
		return "\r\n"
	case NewlineLf:
		return "\n"
	case NewlineOsDefault:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	default:
		return ""
	}
}

// Normalize rewrites every line ending in s to the mode's terminator.
func (k NewlineKind) Normalize(s string) string {
	nl := k.Newline()
	if nl == "" || s == "" {
		return s
	}
	return newlinePattern.ReplaceAllLiteralString(s, nl)
}

// MarshalText implements encoding.TextMarshaler.
func (k NewlineKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *NewlineKind) UnmarshalText(text []byte) error {
	parsed, err := ParseNewlineKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
