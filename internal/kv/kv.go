// internal/kv/kv.go
//
// Durable key-value storage for the little state that outlives a session
// (streak record, theme preference).
//
// Implementations:
//   - Memory: map-backed, for tests and STORE=memory.
//   - SQLite: single-table store on disk, schema managed by golang-migrate.

package kv

import "context"

// Store is a string-keyed, string-valued store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}
