package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for constraint violations.
const (
	myDupEntry         = 1062
	myBadNull          = 1048
	myNoReferencedRow  = 1216
	myRowIsReferenced  = 1217
	myRowIsReferenced2 = 1451
	myNoReferencedRow2 = 1452
	myCheckConstraint  = 3819
)

// MySQLDriver implements the Driver interface for MySQL and MariaDB.
type MySQLDriver struct {
	db *sql.DB
}

// NewMySQL creates a new MySQL driver.
func NewMySQL() *MySQLDriver {
	return &MySQLDriver{}
}

// Open opens a MySQL connection from a go-sql-driver DSN
// (user:pass@tcp(host:port)/dbname).
func (d *MySQLDriver) Open(dsn string) error {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("parse mysql dsn: %w", err)
	}
	// started is a DATETIME we scan into time.Time; migrations hold several statements.
	cfg.ParseTime = true
	cfg.MultiStatements = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping mysql: %w", err)
	}

	d.db = db
	return nil
}

// Close closes the database connection.
func (d *MySQLDriver) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Migrate runs all migrations for the given schema type.
// MySQL migrations are read from schema/mysql/{type}_NNN.sql files.
func (d *MySQLDriver) Migrate(ctx context.Context, schemaFS fs.FS, schemaType string) error {
	return runMigrations(ctx, d.db, schemaFS, schemaType, d.migrations())
}

func (d *MySQLDriver) migrations() migrationSet {
	return migrationSet{
		dir:         "schema/mysql",
		createTable: `
			CREATE TABLE IF NOT EXISTS _migrations (
				version INT PRIMARY KEY,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`,
		record:      "INSERT INTO _migrations (version) VALUES (" + d.Placeholder(1) + ")",
	}
}

// Dialect returns the MySQL dialect identifier.
func (d *MySQLDriver) Dialect() Dialect {
	return DialectMySQL
}

// DriverName returns the database/sql driver name registered by go-sql-driver.
func (d *MySQLDriver) DriverName() string {
	return "mysql"
}

// Placeholder returns the MySQL placeholder (always ?).
func (d *MySQLDriver) Placeholder(index int) string {
	return "?"
}

// Concat uses CONCAT(); || is logical OR in MySQL's default SQL mode.
func (d *MySQLDriver) Concat(parts ...string) string {
	return "CONCAT(" + strings.Join(parts, ", ") + ")"
}

// Classify maps MySQL error numbers to constraint kinds.
func (d *MySQLDriver) Classify(err error) Constraint {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return ConstraintNone
	}

	switch myErr.Number {
	case myNoReferencedRow, myNoReferencedRow2, myRowIsReferenced, myRowIsReferenced2:
		return ConstraintForeignKey
	case myDupEntry:
		return ConstraintUnique
	case myCheckConstraint:
		return ConstraintCheck
	case myBadNull:
		return ConstraintNotNull
	default:
		return ConstraintNone
	}
}

// DB returns the underlying sql.DB for advanced operations.
func (d *MySQLDriver) DB() *sql.DB {
	return d.db
}
