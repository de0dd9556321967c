package db

import (
	"testing"
	"time"
)

// NewTestStore creates a migrated in-memory store for testing.
// The store is closed when the test completes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    s := db.NewTestStore(t)
//	    // use s...
//	}
func NewTestStore(t testing.TB, opts ...Option) *Store {
	t.Helper()

	s, err := OpenInMemory(opts...)
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// FixedClock returns a clock option that always reports ts.
func FixedClock(ts time.Time) Option {
	return WithClock(func() time.Time { return ts })
}
