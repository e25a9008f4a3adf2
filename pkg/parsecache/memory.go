package parsecache

import (
	"context"
	"sync"
)

// MemoryStore is an unbounded in-process store. Every key written stays
// until Clear is called.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]Entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]Entry)}
}

func (s *MemoryStore) Get(_ context.Context, key Key) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *MemoryStore) Set(_ context.Context, key Key, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops every entry.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]Entry)
}
