package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/todos/internal/viewer"
)

// newViewCmd creates the view command
func newViewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse projects interactively",
		Long: `Open a full-screen grid of projects and their managers.

Keys:
  ↑/↓, j/k   move
  enter      show the selected project's members
  r          reload
  q, esc     quit`,
		Args:        cobra.NoArgs,
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) {
				return fmt.Errorf("view needs an interactive terminal; use 'todos projects' instead")
			}
			return viewer.Run(cmd.Context(), app.Store)
		},
	}
}
