package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/portalsync/internal/client/storage"
)

// GetDraft returns a copy of the value stored under key
func (s *Storage) GetDraft(ctx context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var data []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketDrafts).Get([]byte(key))
		if v == nil {
			return storage.ErrDraftNotFound
		}
		// значение валидно только внутри транзакции
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// UpdateDraft runs fn inside a single write transaction, so the read and the
// write of one key cannot interleave with another writer.
func (s *Storage) UpdateDraft(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDrafts)

		var current []byte
		if v := bucket.Get([]byte(key)); v != nil {
			current = make([]byte, len(v))
			copy(current, v)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		if err := bucket.Put([]byte(key), next); err != nil {
			return fmt.Errorf("failed to save draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("draft transaction failed: %w", err)
	}

	return nil
}

// DeleteDraft removes the value stored under key
func (s *Storage) DeleteDraft(ctx context.Context, key string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDrafts).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	return nil
}

// DraftKeys lists every stored draft key
func (s *Storage) DraftKeys(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var keys []string

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDrafts).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	return keys, nil
}
