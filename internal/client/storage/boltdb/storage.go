package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/casinoadmin/internal/client/storage"
	"github.com/iudanet/casinoadmin/internal/crypto"
)

var (
	// BoltDB bucket names
	bucketKV      = []byte("kv")
	bucketSession = []byte("session")
	bucketMeta    = []byte("meta")

	keySalt = []byte("salt")
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db     *bbolt.DB
	sealer *crypto.Sealer
}

// Compile-time checks
var (
	_ storage.KeyValue     = (*Storage)(nil)
	_ storage.SessionState = (*Storage)(nil)
)

// Option configures Storage
type Option func(*options)

type options struct {
	passphrase string
}

// WithPassphrase включает шифрование значений ключом, производным от passphrase.
// Соль хранится в bucket meta и создается при первом открытии.
func WithPassphrase(passphrase string) Option {
	return func(o *options) {
		o.passphrase = passphrase
	}
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if o.passphrase != "" {
		salt, err := s.loadOrCreateSalt()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		sealer, err := crypto.NewPassphraseSealer(o.passphrase, salt)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to init sealer: %w", err)
		}
		s.sealer = sealer
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketKV, bucketSession, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func (s *Storage) loadOrCreateSalt() ([]byte, error) {
	var salt []byte

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		if existing := bucket.Get(keySalt); existing != nil {
			// bbolt возвращает срез, валидный только внутри транзакции
			salt = append([]byte(nil), existing...)
			return nil
		}

		generated, err := crypto.GenerateSalt()
		if err != nil {
			return err
		}
		if err := bucket.Put(keySalt, generated); err != nil {
			return fmt.Errorf("failed to save salt: %w", err)
		}
		salt = generated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load salt: %w", err)
	}

	return salt, nil
}
