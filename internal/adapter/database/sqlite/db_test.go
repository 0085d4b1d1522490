package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapp/internal/adapter/database/sqlite"
	"userapp/pkg/test"
)

func TestOpen_PoolSettings(t *testing.T) {
	for _, logQueries := range []bool{false, true} {
		db, err := sqlite.Open(sqlite.Options{
			Path:           filepath.Join(t.TempDir(), "users.db"),
			MigrationsPath: test.MigrationsPath(),
			LogQueries:     logQueries,
		})
		require.NoError(t, err)

		assert.Equal(t, sqlite.MaxOpenConns, db.Stats().MaxOpenConnections, "log queries: %v", logQueries)

		_, err = db.ExecContext(context.Background(),
			"INSERT INTO users (name, email, encrypted_password, phone) VALUES (?, ?, ?, ?)",
			"Alice", "alice@x.io", "h", "5551234567")
		assert.NoError(t, err)

		require.NoError(t, db.Close())
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := sqlite.Open(sqlite.Options{})

	assert.EqualError(t, err, "sqlite: database path is empty")
}
