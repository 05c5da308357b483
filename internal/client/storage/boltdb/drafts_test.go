package boltdb

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/portalsync/internal/client/storage"
)

func putDraft(t *testing.T, store *Storage, key, value string) {
	t.Helper()
	require.NoError(t, store.UpdateDraft(context.Background(), key, func([]byte) ([]byte, error) {
		return []byte(value), nil
	}))
}

func TestGetDraft_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetDraft(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrDraftNotFound)
}

func TestUpdateDraft_ReceivesCurrent(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	var seen [][]byte
	record := func(current []byte) ([]byte, error) {
		seen = append(seen, current)
		return append(current, 'x'), nil
	}

	require.NoError(t, store.UpdateDraft(ctx, "k", record))
	require.NoError(t, store.UpdateDraft(ctx, "k", record))

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0])
	assert.Equal(t, []byte("x"), seen[1])

	data, err := store.GetDraft(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("xx"), data)
}

func TestUpdateDraft_NilKeepsValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	putDraft(t, store, "k", "v1")

	require.NoError(t, store.UpdateDraft(ctx, "k", func([]byte) ([]byte, error) {
		return nil, nil
	}))

	data, err := store.GetDraft(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestUpdateDraft_ErrorAborts(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	putDraft(t, store, "k", "v1")

	boom := errors.New("boom")
	err := store.UpdateDraft(ctx, "k", func([]byte) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := store.GetDraft(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))
}

func TestUpdateDraft_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.UpdateDraft(ctx, "counter", func(current []byte) ([]byte, error) {
				return append(current, '.'), nil
			}))
		}()
	}
	wg.Wait()

	data, err := store.GetDraft(ctx, "counter")
	require.NoError(t, err)
	assert.Len(t, data, writers)
}

func TestDeleteDraft(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	putDraft(t, store, "k", "v")

	require.NoError(t, store.DeleteDraft(ctx, "k"))
	_, err := store.GetDraft(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrDraftNotFound)

	// удаление отсутствующего ключа не ошибка
	assert.NoError(t, store.DeleteDraft(ctx, "k"))
}

func TestDraftKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	putDraft(t, store, "vendor_profile", "{}")
	putDraft(t, store, "associate_profile", "{}")
	putDraft(t, store, "firm_profile:firm-1", "{}")

	keys, err := store.DraftKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"associate_profile", "firm_profile:firm-1", "vendor_profile"}, keys)
}

func TestDrafts_Closed(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	require.NoError(t, store.Close())

	_, err := store.GetDraft(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.UpdateDraft(ctx, "k", nil), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.DeleteDraft(ctx, "k"), storage.ErrStorageClosed)
	_, err = store.DraftKeys(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
