package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/casinoadmin/internal/client/storage"
)

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	return s.get(bucketKV, key)
}

// Set stores value under key
func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.put(bucketKV, key, value)
}

// Remove deletes key; absent keys are ignored
func (s *Storage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}

		return nil
	})
}

func (s *Storage) get(bucketName []byte, key string) (string, error) {
	if key == "" {
		return "", storage.ErrEmptyKey
	}
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var raw []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", bucketName)
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound
		}

		raw = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return "", err
	}

	if s.sealer == nil {
		return string(raw), nil
	}

	value, err := s.sealer.Open(key, string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", key, err)
	}
	return value, nil
}

func (s *Storage) put(bucketName []byte, key, value string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	stored := value
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(key, value)
		if err != nil {
			return fmt.Errorf("failed to seal %q: %w", key, err)
		}
		stored = sealed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", bucketName)
		}

		if err := bucket.Put([]byte(key), []byte(stored)); err != nil {
			return fmt.Errorf("failed to save %q: %w", key, err)
		}

		return nil
	})
}
