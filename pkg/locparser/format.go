package locparser

import "strings"

// Format is the on-disk loc file format.
type Format int

const (
	// FormatJSON is a JSON loc manifest validated against the loc file schema.
	FormatJSON Format = iota
	// FormatResx is a .NET RESX resource document.
	FormatResx
)

const resxExt = ".resx"

func (f Format) String() string {
	switch f {
	case FormatResx:
		return "resx"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatForPath selects the format by file name alone.
func FormatForPath(path string) Format {
	if len(path) >= len(resxExt) && strings.EqualFold(path[len(path)-len(resxExt):], resxExt) {
		return FormatResx
	}
	return FormatJSON
}
