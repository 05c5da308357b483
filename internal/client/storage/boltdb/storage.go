package boltdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketSession = []byte("session")
	bucketDrafts  = []byte("drafts")
)

// openTimeout bounds the wait for the file lock held by another process
const openTimeout = time.Second

// Storage is the bbolt-backed local profile of a portal client.
// It holds the session and every draft of the signed-in user.
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the local profile database at dbPath.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database. Calling Close twice is a no-op.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path
func (s *Storage) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSession, bucketDrafts} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}
