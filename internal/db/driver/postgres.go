package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
)

// PostgreSQL SQLSTATE codes for integrity constraint violations (class 23).
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgIntegrityClass      = "23"
)

// PostgresDriver implements the Driver interface for PostgreSQL.
type PostgresDriver struct {
	db *sql.DB
}

// NewPostgres creates a new PostgreSQL driver.
func NewPostgres() *PostgresDriver {
	return &PostgresDriver{}
}

// Open opens a PostgreSQL database connection.
func (d *PostgresDriver) Open(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Test the connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}

	d.db = db
	return nil
}

// Close closes the database connection.
func (d *PostgresDriver) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Migrate runs all migrations for the given schema type.
// PostgreSQL migrations are read from schema/postgres/{type}_NNN.sql files.
func (d *PostgresDriver) Migrate(ctx context.Context, schemaFS fs.FS, schemaType string) error {
	return runMigrations(ctx, d.db, schemaFS, schemaType, d.migrations())
}

func (d *PostgresDriver) migrations() migrationSet {
	return migrationSet{
		dir:         "schema/postgres",
		createTable: `
			CREATE TABLE IF NOT EXISTS _migrations (
				version INTEGER PRIMARY KEY,
				applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
			)`,
		record:      "INSERT INTO _migrations (version) VALUES (" + d.Placeholder(1) + ")",
	}
}

// Dialect returns the PostgreSQL dialect identifier.
func (d *PostgresDriver) Dialect() Dialect {
	return DialectPostgres
}

// DriverName returns the database/sql driver name registered by pgx/stdlib.
func (d *PostgresDriver) DriverName() string {
	return "pgx"
}

// Placeholder returns the PostgreSQL placeholder ($1, $2, etc.).
func (d *PostgresDriver) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

// Concat joins SQL expressions with ||.
func (d *PostgresDriver) Concat(parts ...string) string {
	return concatPipes(parts)
}

// Classify maps PostgreSQL SQLSTATE codes to constraint kinds.
func (d *PostgresDriver) Classify(err error) Constraint {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ConstraintNone
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return ConstraintForeignKey
	case pgUniqueViolation:
		return ConstraintUnique
	case pgCheckViolation:
		return ConstraintCheck
	case pgNotNullViolation:
		return ConstraintNotNull
	}
	if len(pgErr.Code) == 5 && pgErr.Code[:2] == pgIntegrityClass {
		return ConstraintOther
	}
	return ConstraintNone
}

// DB returns the underlying sql.DB for advanced operations.
func (d *PostgresDriver) DB() *sql.DB {
	return d.db
}
