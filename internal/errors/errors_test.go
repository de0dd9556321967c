package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestTodoErrorFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      *TodoError
		wantErr  string
		wantUser string
	}{
		{
			name:     "what only",
			err:      &TodoError{What: "something broke"},
			wantErr:  "something broke",
			wantUser: "Error: something broke",
		},
		{
			name:     "what and why",
			err:      &TodoError{What: "something broke", Why: "bad input"},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input",
		},
		{
			name: "full error",
			err: &TodoError{
				What: "something broke",
				Why:  "bad input",
				Fix:  "try again",
			},
			wantErr:  "something broke: bad input",
			wantUser: "Error: something broke\n\nWhy: bad input\n\nFix: try again",
		},
		{
			name: "with cause",
			err: &TodoError{
				What:  "something broke",
				Cause: errors.New("underlying error"),
			},
			wantErr:  "something broke: underlying error",
			wantUser: "Error: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantErr {
				t.Errorf("Error() = %q, want %q", got, tt.wantErr)
			}
			if got := tt.err.UserMessage(); got != tt.wantUser {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestTodoErrorJSON(t *testing.T) {
	err := ErrWriteRejected("save user", "username already taken", errors.New("UNIQUE constraint failed: users.username"))

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("MarshalJSON failed: %v", marshalErr)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if result["code"] != string(CodeWriteRejected) {
		t.Errorf("code = %v, want %v", result["code"], CodeWriteRejected)
	}
	if result["what"] != "could not save user" {
		t.Errorf("what = %v, want %v", result["what"], "could not save user")
	}
	if result["cause"] != "UNIQUE constraint failed: users.username" {
		t.Errorf("cause = %v", result["cause"])
	}
}

func TestIsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("add member: %w", ErrWriteRejected("add project member", "", errors.New("fk")))

	if !errors.Is(wrapped, &TodoError{Code: CodeWriteRejected}) {
		t.Error("errors.Is should match on code through wrapping")
	}
	if errors.Is(wrapped, &TodoError{Code: CodeConfigInvalid}) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestAsTodoError(t *testing.T) {
	if AsTodoError(errors.New("plain")) != nil {
		t.Error("plain error should not convert")
	}

	cause := errors.New("dial tcp: refused")
	wrapped := fmt.Errorf("open store: %w", ErrDatabaseUnavailable("postgres", cause))

	te := AsTodoError(wrapped)
	if te == nil {
		t.Fatal("expected TodoError from wrapped chain")
	}
	if te.Code != CodeDatabaseUnavailable {
		t.Errorf("Code = %v, want %v", te.Code, CodeDatabaseUnavailable)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
}

func TestIsWriteRejected(t *testing.T) {
	if !IsWriteRejected(ErrWriteRejected("create project", "", nil)) {
		t.Error("write rejection not detected")
	}
	if IsWriteRejected(ErrMigrationFailed(nil)) {
		t.Error("migration failure reported as write rejection")
	}
	if IsWriteRejected(nil) {
		t.Error("nil reported as write rejection")
	}
}

func TestConstructorsHaveFix(t *testing.T) {
	for _, err := range []*TodoError{
		ErrConfigInvalid("/tmp/config.yaml", nil),
		ErrDatabaseUnavailable("mysql", nil),
		ErrMigrationFailed(nil),
	} {
		if err.Fix == "" {
			t.Errorf("%s: Fix should not be empty", err.Code)
		}
	}
}
