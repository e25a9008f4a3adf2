package parsecache

import (
	"context"

	"github.com/dmitrymomot/locparse/pkg/locfile"
)

// Key identifies a cache slot.
type Key struct {
	FilePath string
	Newline  locfile.NewlineKind
}

// String renders the key as "<path>?<mode>", with "none" when no newline
// normalization applies.
func (k Key) String() string {
	return k.FilePath + "?" + k.Newline.String()
}

// Entry is the last content seen for a key and what it parsed to.
type Entry struct {
	Content string       `json:"content"`
	File    locfile.File `json:"file"`
}

// Store persists entries. Get reports false on a miss; backend failures are
// also reported as misses.
type Store interface {
	Get(ctx context.Context, key Key) (Entry, bool)
	Set(ctx context.Context, key Key, entry Entry)
}
