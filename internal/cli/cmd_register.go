package cli

import (
	"github.com/spf13/cobra"

	"github.com/randalmurphal/todos/internal/db"
)

// newRegisterCmd creates the register command
func newRegisterCmd(app *App) *cobra.Command {
	var first, last string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Register a user",
		Long: `Register a user.

The first name defaults to the username with its first letter capitalized.
The last name is left empty unless given.

Example:
  todos register alice                 # first name "Alice"
  todos register jdoe -f Jane -l Doe`,
		Args:        cobra.MatchAll(cobra.ExactArgs(1), nonEmptyArg("username")),
		Annotations: storeAnnotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := db.NewUser{Username: args[0]}
			if cmd.Flags().Changed("first") {
				u.FirstName = &first
			}
			if cmd.Flags().Changed("last") {
				u.LastName = &last
			}

			err := app.Store.RegisterUser(cmd.Context(), u)
			return app.printer(cmd).writeOutcome(err, "User registered successfully.", "Could not save user.")
		},
	}

	cmd.Flags().StringVarP(&first, "first", "f", "", "first name (default: capitalized username)")
	cmd.Flags().StringVarP(&last, "last", "l", "", "last name")

	return cmd
}
