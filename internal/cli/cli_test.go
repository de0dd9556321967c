package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/todos/internal/config"
	"github.com/randalmurphal/todos/internal/db"
)

var testClock = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// newTestApp returns an App wired to default config and a fresh in-memory store.
func newTestApp(t *testing.T) *App {
	t.Helper()
	app := NewApp()
	app.Config = config.NewTrackedConfig()
	app.Store = db.NewTestStore(t, db.FixedClock(testClock))
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// run executes one command line against app and returns its stdout.
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRun is run for command lines that are expected to succeed.
func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := run(t, app, args...)
	require.NoError(t, err, "todos %v", args)
	return out
}

// seed registers ann (1) and bob (2) and creates Apollo (1) managed by ann.
func seed(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()
	ann, lee, bob, stone := "Ann", "Lee", "Bob", "Stone"
	require.NoError(t, app.Store.RegisterUser(ctx, db.NewUser{Username: "ann", FirstName: &ann, LastName: &lee}))
	require.NoError(t, app.Store.RegisterUser(ctx, db.NewUser{Username: "bob", FirstName: &bob, LastName: &stone}))
	require.NoError(t, app.Store.CreateProject(ctx, db.NewProject{Name: "Apollo", ManagerID: 1}))
}
