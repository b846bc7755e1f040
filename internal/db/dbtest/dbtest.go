// Package dbtest opens throwaway SQLite databases with the real schema applied.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/galeri/internal/db"
)

// New returns a migrated SQLite database living in the test's temp dir.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "galeri.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}
