// Package memory provides an in-process implementation of the client storage
// interfaces. It backs tests and the --store=memory mode of the console.
package memory

import (
	"context"
	"sync"

	"github.com/iudanet/casinoadmin/internal/client/storage"
)

// Storage is a map-backed KeyValue and SessionState.
// The *Err fields force the corresponding operation to fail.
type Storage struct {
	kv      map[string]string
	session map[string]string

	SetErr          error
	RemoveErr       error
	ClearSessionErr error

	mu sync.Mutex
}

// Compile-time checks
var (
	_ storage.KeyValue     = (*Storage)(nil)
	_ storage.SessionState = (*Storage)(nil)
)

// New creates an empty Storage
func New() *Storage {
	return &Storage{
		kv:      make(map[string]string),
		session: make(map[string]string),
	}
}

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.kv[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SetErr != nil {
		return s.SetErr
	}
	s.kv[key] = value
	return nil
}

// Remove deletes key
func (s *Storage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	delete(s.kv, key)
	return nil
}

// PutSession stores a transient value
func (s *Storage) PutSession(ctx context.Context, key, value string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session[key] = value
	return nil
}

// GetSession returns a transient value
func (s *Storage) GetSession(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.session[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return v, nil
}

// ClearSession removes all transient values
func (s *Storage) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ClearSessionErr != nil {
		return s.ClearSessionErr
	}
	s.session = make(map[string]string)
	return nil
}

// Snapshot returns a copy of the persistent keys
func (s *Storage) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.kv))
	for k, v := range s.kv {
		out[k] = v
	}
	return out
}
