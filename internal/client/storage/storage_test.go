package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	value, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, s.Set(ctx, "deletedUserIds", []byte("[1,2]")))
	value, err = s.Get(ctx, "deletedUserIds")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(value))

	require.NoError(t, s.Set(ctx, "deletedUserIds", []byte("[1,2,3]")))
	value, err = s.Get(ctx, "deletedUserIds")
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(value))
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestSQLiteStorage(t *testing.T) {
	s, err := NewSQLiteStorage(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStorage(t, s)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := NewSQLiteStorage(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "deletedUserIds", []byte("[5]")))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, err := reopened.Get(ctx, "deletedUserIds")
	require.NoError(t, err)
	assert.Equal(t, "[5]", string(value))
}

func TestSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(context.Background(), "")
	assert.Error(t, err)
}

func TestRedisStorage_BadURL(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestRedisStorage(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	s, err := Open(context.Background(), "", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStorage(t, s)
}
