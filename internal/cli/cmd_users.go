package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newUsersCmd creates the users command
func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "users",
		Short:       "List users",
		Args:        cobra.NoArgs,
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Store.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{idCell(u.ID), u.Username, u.FullName})
			}

			p := app.printer(cmd)
			if len(users) == 0 && p.format != formatJSON {
				_, _ = fmt.Fprintln(p.out, "No users registered. Run 'todos register <username>'.")
				return nil
			}
			return p.table("Users", []column{
				{Title: "ID", Right: true},
				{Title: "Username", Color: "4"},
				{Title: "Fullname"},
			}, rows, users)
		},
	}
}
