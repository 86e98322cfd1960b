// Package dbtest opens throwaway SQLite databases carrying the service schema.
package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/umakantv/go-utils/db/migrations"
)

// Open returns an in-memory database migrated from dir the same way the
// server migrates its database file. migrations.Migrate logs, so callers
// need logger.Init in their TestMain.
//
// The pool is pinned to one connection, otherwise each connection would
// see its own empty :memory: database.
func Open(t *testing.T, dir string) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Migrate(db, dir))
	return db
}
