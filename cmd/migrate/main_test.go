package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMigrationPart(t *testing.T) {
	content := `
-- +migrate Up
CREATE TABLE clients (id uuid);
ALTER TABLE clients ADD COLUMN name text;

-- +migrate Down
DROP TABLE clients;
`
	t.Run("Extract Up", func(t *testing.T) {
		up := extractMigrationPart(content, "Up")
		assert.Contains(t, up, "CREATE TABLE clients")
		assert.Contains(t, up, "ALTER TABLE clients")
		assert.NotContains(t, up, "DROP TABLE clients")
		assert.NotContains(t, up, "-- +migrate Up")
	})

	t.Run("Extract Down", func(t *testing.T) {
		down := extractMigrationPart(content, "Down")
		assert.Contains(t, down, "DROP TABLE clients")
		assert.NotContains(t, down, "CREATE TABLE clients")
	})
}

func TestShippedMigrations(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var all string
	for _, f := range files {
		content, err := os.ReadFile(f)
		require.NoError(t, err)

		up := extractMigrationPart(string(content), "Up")
		down := extractMigrationPart(string(content), "Down")
		assert.NotEmpty(t, up, f)
		assert.NotEmpty(t, down, f)
		all += up
	}

	assert.Contains(t, all, "CREATE TABLE IF NOT EXISTS invoices")
	assert.Contains(t, all, "UNIQUE (invoice_number)")
	assert.Contains(t, all, "UNIQUE (period_prefix, serial)")
}

func writeMigration(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunMigrationsUp(t *testing.T) {
	t.Run("Applies pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		path := writeMigration(t, dir, "20240101_init.sql", "-- +migrate Up\nCREATE TABLE test (id int);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("20240101_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("CREATE TABLE test").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO schema_migrations").
			WithArgs("20240101_init.sql").
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, runMigrationsUp(db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		path := writeMigration(t, dir, "20240101_init.sql", "-- +migrate Up\nCREATE TABLE test (id int);")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WithArgs("20240101_init.sql").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, runMigrationsUp(db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Up section", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		path := writeMigration(t, dir, "20240101_empty.sql", "-- +migrate Down\nDROP TABLE test;")

		mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err = runMigrationsUp(db, []string{path})
		assert.ErrorContains(t, err, "no Up section")
	})
}

func TestRunMigrationsDown(t *testing.T) {
	t.Run("Rolls back latest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		path := writeMigration(t, dir, "20240101_init.sql",
			"-- +migrate Up\nCREATE TABLE test (id int);\n-- +migrate Down\nDROP TABLE test;")

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("20240101_init.sql"))
		mock.ExpectExec("DROP TABLE test").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM schema_migrations").
			WithArgs("20240101_init.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, runMigrationsDown(db, []string{path}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnError(sql.ErrNoRows)

		assert.NoError(t, runMigrationsDown(db, nil))
	})

	t.Run("File missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT version FROM schema_migrations").
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("20240101_gone.sql"))

		err = runMigrationsDown(db, nil)
		assert.ErrorContains(t, err, "migration file not found")
	})
}

func TestRun(t *testing.T) {
	t.Run("Sorted and applied", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dir := t.TempDir()
		writeMigration(t, dir, "20240201_b.sql", "-- +migrate Up\nCREATE TABLE b (id int);")
		writeMigration(t, dir, "20240101_a.sql", "-- +migrate Up\nCREATE TABLE a (id int);")

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))
		for _, m := range []struct{ file, table string }{
			{"20240101_a.sql", "a"},
			{"20240201_b.sql", "b"},
		} {
			mock.ExpectQuery("SELECT EXISTS.*schema_migrations").
				WithArgs(m.file).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			mock.ExpectExec("CREATE TABLE " + m.table + " ").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO schema_migrations").
				WithArgs(m.file).
				WillReturnResult(sqlmock.NewResult(1, 1))
		}

		require.NoError(t, run(db, "up", dir))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown mode", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = run(db, "sideways", t.TempDir())
		assert.ErrorContains(t, err, "unknown mode")
	})
}
