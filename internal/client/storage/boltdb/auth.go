package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/portalsync/internal/client/storage"
)

var sessionKey = []byte("current")

// SaveSession stores the signed-in session
func (s *Storage) SaveSession(ctx context.Context, session *storage.Session) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSession).Put(sessionKey, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// GetSession returns the stored session or ErrSessionNotFound
func (s *Storage) GetSession(ctx context.Context) (*storage.Session, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var session *storage.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSession).Get(sessionKey)
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &storage.Session{}
		if err := json.Unmarshal(data, session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession removes the stored session
func (s *Storage) DeleteSession(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket.Get(sessionKey) == nil {
			return storage.ErrSessionNotFound
		}
		if err := bucket.Delete(sessionKey); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}
