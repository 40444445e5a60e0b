package storage

import "context"

//go:generate moq -out keyvalue_mock.go . KeyValue

// KeyValue defines the persistent string key-value store the client keeps its
// credentials in. It is the lowest storage layer: values are stored as-is.
type KeyValue interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// SessionState defines transient per-run state (the analogue of a browser tab's
// session storage). It is wiped on logout.
type SessionState interface {
	// PutSession stores a transient value
	PutSession(ctx context.Context, key, value string) error

	// GetSession returns a transient value or ErrKeyNotFound
	GetSession(ctx context.Context, key string) (string, error)

	// ClearSession removes all transient values
	ClearSession(ctx context.Context) error
}
