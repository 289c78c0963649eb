package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storesUnderTest(t *testing.T) map[string]Store {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json")),
		"redis":  NewRedisStore(client, "test:"),
	}
}

func TestStores(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, KeyAccessToken)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, store.Set(ctx, KeyAccessToken, "A1"))
			require.NoError(t, store.Set(ctx, KeyRefreshToken, "R1"))
			require.NoError(t, store.Set(ctx, KeyAccessToken, "A2"))

			v, err := store.Get(ctx, KeyAccessToken)
			require.NoError(t, err)
			assert.Equal(t, "A2", v)

			v, err = store.Get(ctx, KeyRefreshToken)
			require.NoError(t, err)
			assert.Equal(t, "R1", v)

			require.NoError(t, store.Clear(ctx))
			_, err = store.Get(ctx, KeyAccessToken)
			assert.ErrorIs(t, err, ErrKeyNotFound)
			_, err = store.Get(ctx, KeyRefreshToken)
			assert.ErrorIs(t, err, ErrKeyNotFound)

			// Clearing an empty store is not an error.
			require.NoError(t, store.Clear(ctx))
		})
	}
}

func TestRedisStoreClearLeavesForeignKeys(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set("other-app:key", "keep"))

	store := NewRedisStore(client, "")
	require.NoError(t, store.Set(ctx, KeyUser, `{"role":"student"}`))
	assert.True(t, mr.Exists(DefaultKeyPrefix+KeyUser))

	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists(DefaultKeyPrefix+KeyUser))
	assert.True(t, mr.Exists("other-app:key"))
}

func TestFileStoreSharesStateAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, NewFileStore(path).Set(ctx, KeyAccessToken, "A1"))

	v, err := NewFileStore(path).Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "A1", v)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, writeFile(path, "{not json"))

	_, err := NewFileStore(path).Get(context.Background(), KeyAccessToken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
