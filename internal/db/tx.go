package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	todoerrors "github.com/randalmurphal/todos/internal/errors"
)

// Tx provides database operations within a write transaction.
// The context is stored and used for all operations, so cancellation
// reaches every statement the write issues.
type Tx struct {
	tx  *sqlx.Tx
	ctx context.Context
}

// Exec executes a statement within the transaction.
func (t *Tx) Exec(query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(t.ctx, query, args...)
}

// RunWrite executes fn within a transaction.
// If fn returns nil the transaction is committed. Otherwise it is rolled back
// and the failure comes back as a WRITE_REJECTED TodoError naming op, so the
// caller can report it without the process failing.
func (s *Store) RunWrite(ctx context.Context, op string, fn func(tx *Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return s.rejected(op, fmt.Errorf("begin transaction: %w", err))
	}

	if err := fn(&Tx{tx: tx, ctx: ctx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Warn("rollback failed", "op", op, "error", rbErr)
		}
		s.logger.Debug("write rolled back", "op", op, "error", err)
		return s.rejected(op, err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Debug("commit failed", "op", op, "error", err)
		return s.rejected(op, fmt.Errorf("commit transaction: %w", err))
	}

	s.logger.Debug("write committed", "op", op)
	return nil
}

func (s *Store) rejected(op string, err error) error {
	return todoerrors.ErrWriteRejected(op, s.driver.Classify(err).Reason(), err)
}
