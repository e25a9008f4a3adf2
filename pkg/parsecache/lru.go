package parsecache

import (
	"container/list"
	"context"
	"sync"
)

type lruItem struct {
	key   Key
	entry Entry
}

// LRUStore keeps at most capacity keys. Reads and writes mark a key as
// recently used; when full, the least recently used key is evicted.
type LRUStore struct {
	capacity int
	items    map[Key]*list.Element
	order    *list.List
	mu       sync.Mutex
	onEvict  func(key Key, entry Entry)
}

// NewLRUStore creates a bounded store. Panics if capacity is not positive.
func NewLRUStore(capacity int) *LRUStore {
	if capacity <= 0 {
		panic("parsecache: LRU capacity must be positive")
	}
	return &LRUStore{
		capacity: capacity,
		items:    make(map[Key]*list.Element),
		order:    list.New(),
	}
}

// OnEvict registers fn to be called, with the lock held, for every evicted
// entry. fn must not call back into the store.
func (s *LRUStore) OnEvict(fn func(key Key, entry Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = fn
}

func (s *LRUStore) Get(_ context.Context, key Key) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.order.MoveToFront(el)
		return el.Value.(*lruItem).entry, true
	}
	return Entry{}, false
}

func (s *LRUStore) Set(_ context.Context, key Key, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.order.MoveToFront(el)
		el.Value.(*lruItem).entry = entry
		return
	}

	s.items[key] = s.order.PushFront(&lruItem{key: key, entry: entry})
	if s.order.Len() > s.capacity {
		s.evictOldest()
	}
}

func (s *LRUStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Must be called with lock held.
func (s *LRUStore) evictOldest() {
	el := s.order.Back()
	if el == nil {
		return
	}
	s.order.Remove(el)
	item := el.Value.(*lruItem)
	delete(s.items, item.key)
	if s.onEvict != nil {
		s.onEvict(item.key, item.entry)
	}
}
