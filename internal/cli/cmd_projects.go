package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newProjectsCmd creates the projects command
func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Long: `List projects with their managers, grouped by manager.

Example:
  todos projects
  todos projects --json`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Store.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			p := app.printer(cmd)
			if len(projects) == 0 && p.format != formatJSON {
				_, _ = fmt.Fprintln(p.out, "No projects yet. Run 'todos create <name> -m <manager-id>'.")
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for _, pr := range projects {
				rows = append(rows, []string{idCell(pr.ID), pr.Name, pr.ManagerName})
			}
			return p.table("Projects", []column{
				{Title: "ID", Right: true, Color: "4"},
				{Title: "Project name", Color: "2"},
				{Title: "Manager", Color: "1"},
			}, rows, projects)
		},
	}
}
