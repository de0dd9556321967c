// Package cli implements the todos command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/todos/internal/config"
	"github.com/randalmurphal/todos/internal/db"
	"github.com/randalmurphal/todos/internal/logger"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "0.1.0-dev"

// annotationNeeds marks what a command needs before it runs.
// Commands without it (version, help, completion) get nothing opened.
const (
	annotationNeeds = "todos.needs"
	needsConfig     = "config"
	needsStore      = "store"
)

// storeAnnotations is shared by every command that works on the database.
var storeAnnotations = map[string]string{annotationNeeds: needsStore}

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigFile string
	EnvFile    string
	Verbose    bool
	JSON       bool
	Plain      bool
	Driver     string
	DSN        string
}

// App carries the resources of one invocation. Commands get it from the
// dispatcher table and reach the database only through Store.
type App struct {
	Opts   GlobalOptions
	Config *config.TrackedConfig
	Store  *db.Store
	Logger *slog.Logger

	closers []io.Closer
}

// NewApp returns an App with nothing opened yet.
func NewApp() *App {
	return &App{Logger: slog.New(slog.DiscardHandler)}
}

// NewRootCmd builds the command tree for app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "todos",
		Short: "Manage users, projects and tasks",
		Long: `todos keeps track of users, the projects they manage, project members
and the tasks assigned to them.

Quick start:
  todos register ann -f Ann -l Lee     Register a user
  todos create Apollo -m 1             Create a project managed by user 1
  todos add-member -p 1 -u 2           Add user 2 to project 1
  todos add-task "Design" -p 1 -u 2    Assign a task
  todos project-details 1              Show a project and its members`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra checks required flags after this hook; do it first so a
			// missing flag never reaches the database.
			if err := cmd.ValidateRequiredFlags(); err != nil {
				return err
			}
			if err := cmd.ValidateFlagGroups(); err != nil {
				return err
			}
			// Arguments parsed; from here on failures are not usage errors.
			cmd.SilenceUsage = true
			return app.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.Opts.ConfigFile, "config", "", "config file (default is .todos/config.yaml)")
	pf.StringVar(&app.Opts.EnvFile, "env-file", "", "dotenv file to load (default is .env)")
	pf.BoolVarP(&app.Opts.Verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&app.Opts.JSON, "json", false, "output as JSON")
	pf.BoolVar(&app.Opts.Plain, "plain", false, "output plain columns without borders or colour")
	pf.StringVar(&app.Opts.Driver, "db-driver", "", "database driver: sqlite, postgres or mysql")
	pf.StringVar(&app.Opts.DSN, "dsn", "", "database connection string (overrides config)")

	for _, newCmd := range commandTable {
		root.AddCommand(newCmd(app))
	}

	return root
}

// setup loads config, builds the logger and opens the store, as far as cmd needs.
func (a *App) setup(cmd *cobra.Command) error {
	needs := cmd.Annotations[annotationNeeds]
	if needs == "" {
		return nil
	}

	if a.Config == nil {
		tc, err := config.Load(config.LoadOptions{
			ConfigFile: a.Opts.ConfigFile,
			EnvFile:    a.Opts.EnvFile,
			Driver:     a.Opts.Driver,
			DSN:        a.Opts.DSN,
		})
		if err != nil {
			return err
		}
		a.Config = tc
	}

	log, closer := logger.New(a.Config.Config.Log, cmd.ErrOrStderr(), a.Opts.Verbose)
	a.Logger = log
	a.closers = append(a.closers, closer)
	log.Debug("command starting", "command", cmd.CommandPath(), "config_file", a.Config.File)

	if needs == needsConfig || a.Store != nil {
		return nil
	}
	return a.openStore(cmd.Context())
}

func (a *App) openStore(ctx context.Context) error {
	cfg := a.Config.Config
	dialect, err := cfg.Dialect()
	if err != nil {
		return err
	}

	s, err := db.Open(cfg.DSN(), dialect, db.WithLogger(a.Logger))
	if err != nil {
		return err
	}
	a.Store = s
	a.closers = append(a.closers, s)
	a.Logger.Debug("database opened", "dialect", dialect)

	if cfg.Database.AutoMigrate {
		return s.Migrate(ctx)
	}
	return nil
}

// Close releases everything setup opened, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := SetupSignalHandler(context.Background(), os.Stderr)
	defer stop()

	app := NewApp()
	root := NewRootCmd(app)
	err := root.ExecuteContext(ctx)
	if closeErr := app.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		PrintCommandError(os.Stderr, root, err, app.Opts)
		return 1
	}
	return 0
}
