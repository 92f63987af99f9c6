// Package store defines the string-keyed snapshot store the application
// persists into, and a factory selecting among its backends.
//
// The store mirrors the browser-localStorage model the data layout comes
// from: one serialized document per well-known key, read fully on load,
// rewritten fully on every mutation.
package store

import "context"

// Store is the port implemented by every backend.
type Store interface {
	// Get returns the value for key, with found=false (not an error)
	// when the key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set writes or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
