package locfile

import (
	"maps"
	"slices"
)

// LocalizedString is a single localized entry.
type LocalizedString struct {
	Value   string `json:"value" yaml:"value"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// File maps string names to their localized entries.
type File map[string]LocalizedString

// Keys returns the string names in lexical order.
func (f File) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Clone returns a shallow copy of the file. Entries are values, so the copy
// can be mutated without affecting the original.
func (f File) Clone() File {
	if f == nil {
		return nil
	}
	return maps.Clone(f)
}
