// Package locfile defines the normalized in-memory representation of a
// localization ("loc") file shared by every parser in this module.
//
// A loc file maps string names to a localized value plus an optional
// translator comment. Two on-disk formats produce it: RESX resource documents
// (see package resx) and JSON loc manifests (see package locjson).
//
// # Newline normalization
//
// NewlineKind controls how line endings inside parsed values are
// canonicalized. The zero value, NewlineNone, leaves text untouched:
//
//	kind, err := locfile.ParseNewlineKind("crlf")
//	if err != nil {
//		return err
//	}
//	value = kind.Normalize(value) // every line break is now "\r\n"
//
// NewlineKind implements encoding.TextUnmarshaler so it can be used directly
// in environment-driven configuration structs.
package locfile
