// Package errors provides structured error types for todos.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for todos.
const (
	// Configuration errors
	CodeConfigInvalid Code = "CONFIG_INVALID"

	// Database errors
	CodeDatabaseUnavailable Code = "DATABASE_UNAVAILABLE"
	CodeMigrationFailed     Code = "MIGRATION_FAILED"

	// A write was rolled back. Handlers report these and carry on.
	CodeWriteRejected Code = "WRITE_REJECTED"

	// Argument errors caught after parsing (e.g. blank usernames)
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// TodoError is the structured error type for todos.
type TodoError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *TodoError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *TodoError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *TodoError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// MarshalJSON implements json.Marshaler.
func (e *TodoError) MarshalJSON() ([]byte, error) {
	type alias TodoError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a TodoError with the same code.
func (e *TodoError) Is(target error) bool {
	t, ok := target.(*TodoError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// --- Error constructors ---

// ErrConfigInvalid returns an error for a config file that cannot be used.
func ErrConfigInvalid(path string, cause error) *TodoError {
	what := "invalid configuration"
	if path != "" {
		what += " in " + path
	}
	return &TodoError{
		Code:  CodeConfigInvalid,
		What:  what,
		Fix:   "Check the file against 'todos config' output or remove it to use defaults",
		Cause: cause,
	}
}

// ErrDatabaseUnavailable returns an error when the database cannot be opened.
func ErrDatabaseUnavailable(dialect string, cause error) *TodoError {
	return &TodoError{
		Code:  CodeDatabaseUnavailable,
		What:  fmt.Sprintf("could not connect to the %s database", dialect),
		Fix:   "Check database.* settings (or TODOS_DB_* / --dsn) and that the server is reachable",
		Cause: cause,
	}
}

// ErrMigrationFailed returns an error when the embedded schema cannot be applied.
func ErrMigrationFailed(cause error) *TodoError {
	return &TodoError{
		Code:  CodeMigrationFailed,
		What:  "could not apply the database schema",
		Fix:   "Run 'todos migrate --verbose' to see which migration fails",
		Cause: cause,
	}
}

// ErrWriteRejected returns an error for a write that the database refused.
// The transaction has already been rolled back when this is returned.
func ErrWriteRejected(op, reason string, cause error) *TodoError {
	return &TodoError{
		Code:  CodeWriteRejected,
		What:  fmt.Sprintf("could not %s", op),
		Why:   reason,
		Cause: cause,
	}
}

// ErrInvalidArgument returns an error for an argument that parsed but is unusable.
func ErrInvalidArgument(name, why string) *TodoError {
	return &TodoError{
		Code: CodeInvalidArgument,
		What: fmt.Sprintf("invalid %s", name),
		Why:  why,
	}
}

// AsTodoError extracts a TodoError from an error chain.
func AsTodoError(err error) *TodoError {
	var te *TodoError
	if errors.As(err, &te) {
		return te
	}
	return nil
}

// IsWriteRejected reports whether err is a rolled-back write.
func IsWriteRejected(err error) bool {
	te := AsTodoError(err)
	return te != nil && te.Code == CodeWriteRejected
}
