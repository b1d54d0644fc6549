// Package cache defines the shared exercise cache: key construction, the
// CacheStore interface with its in-memory backend, and completion-aware
// filtering of cached entries. The cache is append-only; entries are never
// mutated or deleted once written.
package cache
