package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/casinoadmin/internal/client/storage"
)

// PutSession stores a transient value
func (s *Storage) PutSession(ctx context.Context, key, value string) error {
	return s.put(bucketSession, key, value)
}

// GetSession returns a transient value
func (s *Storage) GetSession(ctx context.Context, key string) (string, error) {
	return s.get(bucketSession, key)
}

// ClearSession пересоздает bucket session целиком
func (s *Storage) ClearSession(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketSession); err != nil && err != bbolt.ErrBucketNotFound {
			return fmt.Errorf("failed to drop session bucket: %w", err)
		}
		if _, err := tx.CreateBucket(bucketSession); err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}
		return nil
	})
}
