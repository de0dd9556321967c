package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newTasksCmd creates the tasks command
func newTasksCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks",
		Long: `List tasks with their project and assignee.

Example:
  todos tasks          # every project
  todos tasks -p 1     # one project`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Store.ListTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}

			p := app.printer(cmd)
			if len(tasks) == 0 && p.format != formatJSON {
				_, _ = fmt.Fprintln(p.out, "No tasks found.")
				return nil
			}

			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				started := "-"
				if t.Started != nil {
					started = t.Started.UTC().Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{
					idCell(t.ID),
					truncate(t.Title, 40),
					p.style(statusColor(t.Status)).Render(string(t.Status)),
					strconv.Itoa(t.Hours),
					started,
					t.ProjectName,
					t.Assignee,
				})
			}
			return p.table("Tasks", []column{
				{Title: "ID", Right: true},
				{Title: "Title"},
				{Title: "Status"},
				{Title: "Hours", Right: true},
				{Title: "Started"},
				{Title: "Project", Color: "2"},
				{Title: "Assignee", Color: "4"},
			}, rows, tasks)
		},
	}

	cmd.Flags().Int64VarP(&projectID, "project-id", "p", 0, "only tasks in this project")

	return cmd
}
