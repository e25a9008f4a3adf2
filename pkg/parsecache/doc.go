// Package parsecache stores parsed loc files between builds.
//
// Entries are keyed by file path and newline normalization mode and carry the
// raw content they were parsed from. A stored entry is only reusable when the
// caller's current content is byte-identical to Entry.Content; that check is
// the caller's job, which keeps every Store a plain key/value map.
//
// Three stores are provided:
//
//   - MemoryStore: unbounded, lives as long as the owning build session.
//   - LRUStore: bounded, evicts the least recently used key.
//   - RedisStore: shared between processes, entries expire after a TTL.
//
// All stores are safe for concurrent use.
package parsecache
