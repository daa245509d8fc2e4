package storage

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/akosarev/weather-forecast/internal/logger"
)

var bucketName = []byte("forecast")

// BoltStore is a bbolt-backed key-value medium. All entries live in a single
// bucket; values are opaque strings owned by the caller.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the database file at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// GetString returns the value stored under key, if any.
func (s *BoltStore) GetString(key string) (string, bool) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		logger.Errorf("storage: read of %q failed: %v", key, err)
		return "", false
	}
	return value, found
}

// SetString stores value under key. Write failures are logged here; callers
// treat the medium as fire-and-forget.
func (s *BoltStore) SetString(key, value string) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		logger.Errorf("storage: write of %q failed: %v", key, err)
	}
}

// Remove deletes the entry under key. Removing an absent key is a no-op.
func (s *BoltStore) Remove(key string) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		logger.Errorf("storage: delete of %q failed: %v", key, err)
	}
}

// Close releases the underlying database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
