// Package db provides database persistence for todos.
//
// A Store owns one connection for the lifetime of a command invocation.
// Reads run straight against it; every write goes through RunWrite so that
// it is committed on success and rolled back on failure.
package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/randalmurphal/todos/internal/db/driver"
	todoerrors "github.com/randalmurphal/todos/internal/errors"
)

//go:embed schema
var schemaFS embed.FS

// schemaType is the migration file prefix: schema/todos_NNN.sql.
const schemaType = "todos"

func init() {
	// modernc.org/sqlite registers as "sqlite", which sqlx does not know.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store wraps a database connection with driver abstraction.
type Store struct {
	driver driver.Driver
	db     *sqlx.DB
	q      queries
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp task start times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger for commit/rollback events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens a database with a specific dialect.
// For SQLite, dsn is the file path. For PostgreSQL and MySQL it is the connection string.
func Open(dsn string, dialect driver.Dialect, opts ...Option) (*Store, error) {
	// For SQLite, create parent directory if needed
	if dialect == driver.DialectSQLite && !isMemoryDSN(dsn) {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	drv, err := driver.New(dialect)
	if err != nil {
		return nil, err
	}

	if err := drv.Open(dsn); err != nil {
		return nil, todoerrors.ErrDatabaseUnavailable(string(dialect), err)
	}

	return newStore(drv, opts...), nil
}

// OpenInMemory opens a migrated in-memory SQLite database.
// Each call creates a new isolated database.
func OpenInMemory(opts ...Option) (*Store, error) {
	s, err := Open(":memory:", driver.DialectSQLite, opts...)
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(context.Background()); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

func newStore(drv driver.Driver, opts ...Option) *Store {
	x := sqlx.NewDb(drv.DB(), drv.DriverName())
	s := &Store{
		driver: drv,
		db:     x,
		q:      newQueries(drv, x.Rebind),
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.driver.Close()
}

// Dialect returns the database dialect.
func (s *Store) Dialect() driver.Dialect {
	return s.driver.Dialect()
}

// DB returns the underlying sqlx handle for advanced operations.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Migrate applies the embedded schema for the store's dialect.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.driver.Migrate(ctx, schemaFS, schemaType); err != nil {
		return todoerrors.ErrMigrationFailed(err)
	}
	s.logger.Debug("schema up to date", "dialect", s.Dialect())
	return nil
}
