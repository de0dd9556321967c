// Package driver provides database driver abstraction for SQLite, PostgreSQL and MySQL.
package driver

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
)

// Dialect represents the database dialect.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// Constraint classifies why the database rejected a write.
type Constraint string

const (
	ConstraintNone       Constraint = ""
	ConstraintForeignKey Constraint = "foreign_key"
	ConstraintUnique     Constraint = "unique"
	ConstraintCheck      Constraint = "check"
	ConstraintNotNull    Constraint = "not_null"
	// ConstraintOther is a constraint violation the driver could not narrow down.
	ConstraintOther Constraint = "other"
)

// Reason returns a short human explanation for the constraint kind.
func (c Constraint) Reason() string {
	switch c {
	case ConstraintForeignKey:
		return "a referenced user or project does not exist"
	case ConstraintUnique:
		return "a row with the same unique value already exists"
	case ConstraintCheck:
		return "a value is outside the allowed range"
	case ConstraintNotNull:
		return "a required value is missing"
	case ConstraintOther:
		return "the row violates a table constraint"
	default:
		return ""
	}
}

// Driver abstracts the dialect differences the store cares about.
type Driver interface {
	// Connection
	Open(dsn string) error
	Close() error

	// Migrations
	Migrate(ctx context.Context, schemaFS fs.FS, schemaType string) error

	// Dialect-specific
	Dialect() Dialect
	DriverName() string // name registered with database/sql
	Placeholder(index int) string

	// SQL helpers for dialect differences
	Concat(parts ...string) string

	// Classify maps a driver error to the constraint it violated.
	Classify(err error) Constraint

	// Raw access
	DB() *sql.DB
}

// New creates a driver based on configuration.
func New(dialect Dialect) (Driver, error) {
	switch dialect {
	case DialectSQLite:
		return NewSQLite(), nil
	case DialectPostgres:
		return NewPostgres(), nil
	case DialectMySQL:
		return NewMySQL(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

// ParseDialect parses a dialect string.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	case "mysql", "mariadb":
		return DialectMySQL, nil
	default:
		return "", fmt.Errorf("unknown dialect: %s", s)
	}
}

// concatPipes joins SQL expressions with the standard || operator.
func concatPipes(parts []string) string {
	return strings.Join(parts, " || ")
}
