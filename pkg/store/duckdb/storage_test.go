package duckdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesExportsTable(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	db, err := NewDB(Settings{DbPath: filepath.Join(tmpDir, "test.db")})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO exports (id, filename, mode, geography, size_bytes, sha256, location) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"export-001", "report.pdf", "General", "India", 1024, "abc", nil,
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM exports WHERE id = ?", "export-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestTransactionContext(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	assert.Nil(t, GetTransaction(ctx))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	ctx = WithTransaction(ctx, tx)
	assert.Same(t, tx, GetTransaction(ctx))

	_, err = GetTransaction(ctx).ExecContext(ctx,
		`INSERT INTO exports (id, filename, mode, geography, size_bytes, sha256, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"export-tx", "report.pdf", "General", "India", 1, "abc", time.Now(),
	)
	require.NoError(t, err)
}

func TestInTransaction(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	insert := func(id string) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			require.NotNil(t, GetTransaction(ctx))
			_, err := Executor(ctx, db).ExecContext(ctx,
				`INSERT INTO exports (id, filename, mode, geography, size_bytes, sha256) VALUES (?, ?, ?, ?, ?, ?)`,
				id, "report.pdf", "General", "India", 1, "abc",
			)
			return err
		}
	}
	count := func() int {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&n))
		return n
	}

	ctx := context.Background()
	require.NoError(t, InTransaction(ctx, db, insert("committed")))
	assert.Equal(t, 1, count())

	boom := errors.New("boom")
	err = InTransaction(ctx, db, func(ctx context.Context) error {
		require.NoError(t, insert("rolled-back")(ctx))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count())
}

func TestExecutor(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	assert.Same(t, db, Executor(ctx, db))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()
	assert.Same(t, tx, Executor(WithTransaction(ctx, tx), db))
}
