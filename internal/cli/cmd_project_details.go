package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/todos/internal/db"
)

// newProjectDetailsCmd creates the project-details command
func newProjectDetailsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "project-details <project_id>",
		Short:       "Show a project and its members",
		Args:        cobra.MatchAll(cobra.ExactArgs(1), intArg("project_id")),
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)

			details, err := app.Store.ProjectDetails(cmd.Context(), id)
			if err != nil {
				return err
			}

			p := app.printer(cmd)
			if p.format == formatJSON {
				return p.json(details)
			}
			if details == nil {
				p.line("1", "Project not found")
				return nil
			}
			printProjectDetails(p, details)
			return nil
		},
	}
}

func printProjectDetails(p *printer, d *db.ProjectDetails) {
	_, _ = fmt.Fprintln(p.out, "ID:", d.ID)
	_, _ = fmt.Fprintln(p.out, "Project Name:", d.Name)
	_, _ = fmt.Fprintln(p.out, "Manager Name:", d.ManagerName)
	_, _ = fmt.Fprintln(p.out, "Members:")
	if len(d.Members) == 0 {
		// Render would expand the tab, so it stays outside the style.
		_, _ = fmt.Fprintln(p.out, "\t"+p.style("1").Render("No members assigned to project"))
		return
	}
	for _, m := range d.Members {
		_, _ = fmt.Fprintf(p.out, "\t%d. %s (%s)\n", m.UserID, m.FullName, m.Username)
	}
}
