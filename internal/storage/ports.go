// Package storage persists the daily log collection as a single JSON blob in a
// key-value slot.
package storage

import (
	"context"
	"errors"
)

// LogsKey is the slot key holding the whole record collection.
const LogsKey = "dailyLogs"

// ErrNotFound is returned by a Slot when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Slot is a durable key-value store. Each call must be atomic: a reader never
// observes a partially written value.
type Slot interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Closer is implemented by slots holding resources.
type Closer interface {
	Close() error
}
