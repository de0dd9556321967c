package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newMigrateCmd creates the migrate command
func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Create or upgrade the todos tables in the configured database.

Migrations also run before every command unless database.auto_migrate is false.`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Migrate(cmd.Context()); err != nil {
				return err
			}

			p := app.printer(cmd)
			if p.format == formatJSON {
				return p.json(map[string]string{"status": "ok", "dialect": string(app.Store.Dialect())})
			}
			p.line("2", fmt.Sprintf("Schema up to date (%s).", app.Store.Dialect()))
			return nil
		},
	}
}
