package cli

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/todos/internal/db"
)

// newAddMemberCmd creates the add-member command
func newAddMemberCmd(app *App) *cobra.Command {
	var m db.NewMembership

	cmd := &cobra.Command{
		Use:   "add-member",
		Short: "Add a member to a project",
		Long: `Add an existing user to an existing project.

Example:
  todos add-member -p 1 -u 2`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Store.AddMember(cmd.Context(), m)
			return app.printer(cmd).writeOutcome(err, "Member added successfully.", "Could not add project member.")
		},
	}

	cmd.Flags().Int64VarP(&m.ProjectID, "project-id", "p", 0, "project ID")
	cmd.Flags().Int64VarP(&m.UserID, "user-id", "u", 0, "user ID")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
