package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqlitePragmas are applied to every connection through the DSN so that
// foreign keys hold no matter which pooled connection runs a statement.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// SQLiteDriver implements the Driver interface for SQLite.
type SQLiteDriver struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite driver.
func NewSQLite() *SQLiteDriver {
	return &SQLiteDriver{}
}

// Open opens a SQLite database at the given path (or ":memory:").
func (d *SQLiteDriver) Open(dsn string) error {
	db, err := sql.Open("sqlite", withSQLitePragmas(dsn))
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}

	// One connection: an in-memory database lives and dies with it.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite: %w", err)
	}

	d.db = db
	return nil
}

func withSQLitePragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// Close closes the database connection.
func (d *SQLiteDriver) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Migrate runs all migrations for the given schema type.
// SQLite migrations are read from schema/{type}_NNN.sql files.
func (d *SQLiteDriver) Migrate(ctx context.Context, schemaFS fs.FS, schemaType string) error {
	return runMigrations(ctx, d.db, schemaFS, schemaType, d.migrations())
}

func (d *SQLiteDriver) migrations() migrationSet {
	return migrationSet{
		dir:         "schema",
		createTable: `
			CREATE TABLE IF NOT EXISTS _migrations (
				version INTEGER PRIMARY KEY,
				applied_at TEXT DEFAULT (datetime('now'))
			)`,
		record:      "INSERT INTO _migrations (version) VALUES (" + d.Placeholder(1) + ")",
	}
}

// Dialect returns the SQLite dialect identifier.
func (d *SQLiteDriver) Dialect() Dialect {
	return DialectSQLite
}

// DriverName returns the database/sql driver name registered by modernc.org/sqlite.
func (d *SQLiteDriver) DriverName() string {
	return "sqlite"
}

// Placeholder returns the SQLite placeholder (always ?).
func (d *SQLiteDriver) Placeholder(index int) string {
	return "?"
}

// Concat joins SQL expressions with ||.
func (d *SQLiteDriver) Concat(parts ...string) string {
	return concatPipes(parts)
}

// Classify maps SQLite extended result codes to constraint kinds.
func (d *SQLiteDriver) Classify(err error) Constraint {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return ConstraintNone
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ConstraintForeignKey
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ConstraintUnique
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ConstraintCheck
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return ConstraintNotNull
	}

	// Primary result code only; fall back to the message.
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := se.Error()
		switch {
		case strings.Contains(msg, "FOREIGN KEY"):
			return ConstraintForeignKey
		case strings.Contains(msg, "UNIQUE"):
			return ConstraintUnique
		case strings.Contains(msg, "CHECK"):
			return ConstraintCheck
		case strings.Contains(msg, "NOT NULL"):
			return ConstraintNotNull
		}
		return ConstraintOther
	}
	return ConstraintNone
}

// DB returns the underlying sql.DB for advanced operations.
func (d *SQLiteDriver) DB() *sql.DB {
	return d.db
}
