package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/casinoadmin/internal/client/storage"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestNew_RunsMigrations(t *testing.T) {
	store := setupTestStorage(t)

	for _, table := range []string{"kv", "session_state", "goose_db_version"} {
		var name string
		err := store.DB().QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
		assert.Equal(t, table, name)
	}
}

func TestKV_SetGetRemove(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "admin.access_token")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "admin.access_token", "abc"))
	require.NoError(t, store.Set(ctx, "admin.access_token", "xyz"))

	got, err := store.Get(ctx, "admin.access_token")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)

	require.NoError(t, store.Remove(ctx, "admin.access_token"))
	_, err = store.Get(ctx, "admin.access_token")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	assert.NoError(t, store.Remove(ctx, "admin.access_token"))
}

func TestKV_UpdatedAt(t *testing.T) {
	store := setupTestStorage(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Set(context.Background(), "user.username", "alice"))

	var updatedAt int64
	err := store.DB().QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, "user.username").Scan(&updatedAt)
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), updatedAt)
}

func TestKV_EmptyKey(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "")
	assert.ErrorIs(t, err, storage.ErrEmptyKey)
	assert.ErrorIs(t, store.Set(ctx, "", "v"), storage.ErrEmptyKey)
	assert.ErrorIs(t, store.Remove(ctx, ""), storage.ErrEmptyKey)
	assert.ErrorIs(t, store.PutSession(ctx, "", "v"), storage.ErrEmptyKey)
}

func TestSession_Clear(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user.access_token", "keep"))
	require.NoError(t, store.PutSession(ctx, "console_session_id", "run-1"))

	got, err := store.GetSession(ctx, "console_session_id")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got)

	require.NoError(t, store.ClearSession(ctx))

	_, err = store.GetSession(ctx, "console_session_id")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	token, err := store.Get(ctx, "user.access_token")
	require.NoError(t, err)
	assert.Equal(t, "keep", token)
}

func TestNew_FileReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "console.sqlite")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "user.user_id", "42"))
	require.NoError(t, store.Close())

	// Повторный запуск миграций на существующей БД не ломается
	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	got, err := store.Get(ctx, "user.user_id")
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}
