package cli

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/todos/internal/db"
)

// newAddTaskCmd creates the add-task command
func newAddTaskCmd(app *App) *cobra.Command {
	var t db.NewTask
	status := newStatusValue(db.TaskPending)

	cmd := &cobra.Command{
		Use:   "add-task <title>",
		Short: "Assign a task to a project member",
		Long: `Assign a task in a project to a user.

Tasks created in PROGRESS get the current time as their start time.

Example:
  todos add-task "Write docs" -p 1 -u 2
  todos add-task "Fix build" -p 1 -u 2 -t 3 -s PROGRESS`,
		Args:        cobra.ExactArgs(1),
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			t.Title = args[0]
			t.Status = status.status

			err := app.Store.AssignTask(cmd.Context(), t)
			return app.printer(cmd).writeOutcome(err, "Task assigned successfully.", "Could not assign task.")
		},
	}

	cmd.Flags().Int64VarP(&t.ProjectID, "project-id", "p", 0, "project ID")
	cmd.Flags().Int64VarP(&t.UserID, "user-id", "u", 0, "user ID")
	cmd.Flags().IntVarP(&t.Hours, "time", "t", 1, "time required to complete the task, in hours")
	cmd.Flags().VarP(status, "status", "s", "initial status: PENDING or PROGRESS")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
