package dbx_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/ecovate/internal/dbx"
)

func openRecords(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(dbx.SQLite.DriverName(), filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE records (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func keys(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT key FROM records ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		out = append(out, k)
	}
	require.NoError(t, rows.Err())
	return out
}

func put(ctx context.Context, tx dbx.DBTX, key string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO records(key, value) VALUES (?, '{}')`, key)
	return err
}

func TestWithTx(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(ctx context.Context, tx dbx.DBTX) error
		wantErr  bool
		wantKeys []string
	}{
		{
			name: "commit",
			fn: func(ctx context.Context, tx dbx.DBTX) error {
				if err := put(ctx, tx, "accounts"); err != nil {
					return err
				}
				return put(ctx, tx, "session")
			},
			wantKeys: []string{"accounts", "session"},
		},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, tx dbx.DBTX) error {
				if err := put(ctx, tx, "accounts"); err != nil {
					return err
				}
				return assert.AnError
			},
			wantErr: true,
		},
		{
			name: "statement error rolls back earlier writes",
			fn: func(ctx context.Context, tx dbx.DBTX) error {
				if err := put(ctx, tx, "state:a"); err != nil {
					return err
				}
				return put(ctx, tx, "state:a")
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openRecords(t)
			err := dbx.WithTx(context.Background(), db, nil, tt.fn)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantKeys, keys(t, db))
		})
	}
}

func TestWithTx_ReadsOwnWrites(t *testing.T) {
	db := openRecords(t)

	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		require.NoError(t, put(ctx, tx, "session"))
		var n int
		require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n))
		assert.Equal(t, 1, n)
		return nil
	})
	require.NoError(t, err)
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := openRecords(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			require.NoError(t, put(ctx, tx, "accounts"))
			panic("kaput")
		})
	})
	assert.Empty(t, keys(t, db))
}

func TestWithTx_BeginFailsOnClosedDB(t *testing.T) {
	db := openRecords(t)
	require.NoError(t, db.Close())

	called := false
	err := dbx.WithTx(context.Background(), db, nil, func(context.Context, dbx.DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "failed to begin transaction")
	assert.False(t, called)
}

func TestWithTx_KeepsCallbackError(t *testing.T) {
	db := openRecords(t)

	err := dbx.WithTx(context.Background(), db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.NotContains(t, err.Error(), "roll back")
}

func TestWithTx_CommitFailsAfterCancel(t *testing.T) {
	db := openRecords(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := put(ctx, tx, "accounts"); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.Error(t, err)
	assert.Empty(t, keys(t, db))
}
