package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dukaworks/console/internal/console/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "console.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutAll(ctx, map[string]string{
		store.KeyAuthToken: "t1",
		store.KeyUserID:    "01ARZ",
	}))

	got, err := s.Get(ctx, store.KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "t1", got)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "01ARZ", all[store.KeyUserID])
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreUpsert(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutAll(ctx, map[string]string{store.KeyAuthToken: "old"}))
	require.NoError(t, s.PutAll(ctx, map[string]string{store.KeyAuthToken: "new"}))

	got, err := s.Get(ctx, store.KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, "new", got)
}

func TestStoreDeleteAndClear(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutAll(ctx, map[string]string{
		store.KeyAuthToken:      "t",
		store.KeyRefreshToken:   "r",
		store.KeyLegacyUserRole: "ADMIN",
	}))

	// Deleting missing keys alongside present ones is fine.
	require.NoError(t, s.Delete(ctx, store.KeyRefreshToken, "missing"))
	_, err := s.Get(ctx, store.KeyRefreshToken)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Clear(ctx))
	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestStoreMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
}
