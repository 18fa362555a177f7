package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	t.Run("memory database keeps journal in memory", func(t *testing.T) {
		dsn := buildDSN(MemoryPath)
		assert.True(t, strings.HasPrefix(dsn, ":memory:?"))
		assert.Contains(t, dsn, "_pragma=foreign_keys(1)")
		assert.Contains(t, dsn, "_pragma=journal_mode(MEMORY)")
	})

	t.Run("file database uses WAL", func(t *testing.T) {
		dsn := buildDSN("/data/pt.db")
		assert.Contains(t, dsn, "_pragma=foreign_keys(1)")
		assert.Contains(t, dsn, "_pragma=journal_mode(WAL)")
		assert.Contains(t, dsn, "_txlock=immediate")
	})
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	db, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	before, err := Status(ctx, db)
	require.NoError(t, err)
	assert.True(t, before.Pending())

	applied, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	after, err := Status(ctx, db)
	require.NoError(t, err)
	assert.False(t, after.Pending())
	assert.Equal(t, after.Latest, after.Current)

	t.Run("is idempotent", func(t *testing.T) {
		applied, err := Migrate(ctx, db)
		require.NoError(t, err)
		assert.Zero(t, applied)
	})

	t.Run("creates all tables", func(t *testing.T) {
		for _, table := range []string{"user", "portfolio", "investment", "transaction", "performance"} {
			var name string
			err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
			assert.NoError(t, err, "table %s", table)
		}
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO portfolio (id, user_id, name, created_at) VALUES ('p', 'missing', 'x', '2024-01-01T00:00:00.000000Z')`)
		assert.Error(t, err)
	})
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pt.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, HealthCheck(context.Background(), db))
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	db, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	count := func() int {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
		return n
	}

	t.Run("commits on success", func(t *testing.T) {
		err := WithTransaction(ctx, db, func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO kv (k) VALUES ('a')`)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count())
	})

	t.Run("rolls back and returns the error unchanged", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := WithTransaction(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(`INSERT INTO kv (k) VALUES ('b')`); err != nil {
				return err
			}
			return sentinel
		})
		assert.Same(t, sentinel, err)
		assert.Equal(t, 1, count())
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		err := WithTransaction(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(`INSERT INTO kv (k) VALUES ('c')`); err != nil {
				return err
			}
			panic("bad")
		})
		assert.ErrorContains(t, err, "panic in transaction")
		assert.Equal(t, 1, count())
	})
}
