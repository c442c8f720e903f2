package database

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_later.sql":  {Data: []byte("SELECT 10;")},
		"migrations/002_second.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_first.sql":  {Data: []byte("SELECT 1;")},
		"migrations/README.md":      {Data: []byte("ignored")},
	}

	migrations, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, "001_first", migrations[0].Version)
	assert.Equal(t, "002_second", migrations[1].Version)
	assert.Equal(t, "010_later.sql", migrations[2].Filename)
	assert.Equal(t, "SELECT 10;", migrations[2].SQL)
}

func TestLoadMigrations_Empty(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{})
	assert.EqualError(t, err, "no migration files found")
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, hook := test.NewNullLogger()

	require.NoError(t, RunMigrations(db, logger))
	embedded, err := loadMigrations(migrationFiles)
	require.NoError(t, err)
	assert.Len(t, hook.AllEntries(), len(embedded))

	hook.Reset()
	require.NoError(t, RunMigrations(db, logger))
	assert.Empty(t, hook.AllEntries())

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, len(embedded), applied)

	for _, table := range []string{
		"team_members", "team_member_revisions",
		"working_hours", "working_hours_revisions",
		"audit_log",
	} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestRunMigration_RollsBackOnError(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "broken.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, createMigrationsTable(db))

	err = runMigration(db, Migration{Version: "999_broken", Filename: "999_broken.sql", SQL: "CREATE TABLE nope ("})
	require.Error(t, err)

	applied, err := getAppliedMigrations(db)
	require.NoError(t, err)
	assert.False(t, applied["999_broken"])
}

func TestInitializeDatabase(t *testing.T) {
	logger, _ := test.NewNullLogger()
	require.NoError(t, InitializeDatabase(filepath.Join(t.TempDir(), "init.db"), logger))
	t.Cleanup(func() { CloseDB() })

	require.NotNil(t, GetDB())

	var fk int
	require.NoError(t, GetDB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}
