package cli

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/todos/internal/db"
)

// newCreateCmd creates the create command
func newCreateCmd(app *App) *cobra.Command {
	var manager int64

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Long: `Create a project managed by an existing user.

Example:
  todos create Apollo -m 1`,
		Args:        cobra.ExactArgs(1),
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Store.CreateProject(cmd.Context(), db.NewProject{Name: args[0], ManagerID: manager})
			return app.printer(cmd).writeOutcome(err, "Project created successfully.", "Could not create project.")
		},
	}

	cmd.Flags().Int64VarP(&manager, "manager", "m", 0, "ID of the user who will manage the project")
	_ = cmd.MarkFlagRequired("manager")

	return cmd
}
