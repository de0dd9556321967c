package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/randalmurphal/todos/internal/db"
	todoerrors "github.com/randalmurphal/todos/internal/errors"
)

// commandTable maps every subcommand to its constructor. NewRootCmd
// resolves it once; each constructor binds its handler to the App.
var commandTable = []func(*App) *cobra.Command{
	newRegisterCmd,
	newUsersCmd,
	newCreateCmd,
	newProjectsCmd,
	newAddMemberCmd,
	newProjectDetailsCmd,
	newAddTaskCmd,
	newTasksCmd,
	newViewCmd,
	newMigrateCmd,
	newConfigCmd,
	newVersionCmd,
}

// nonEmptyArg rejects a blank positional argument at parse time.
func nonEmptyArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && strings.TrimSpace(args[0]) == "" {
			return todoerrors.ErrInvalidArgument(name, name+" must not be empty")
		}
		return nil
	}
}

// intArg rejects a positional argument that is not an integer.
func intArg(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
			return todoerrors.ErrInvalidArgument(name, fmt.Sprintf("%q is not an integer", args[0]))
		}
		return nil
	}
}

// statusValue is a pflag.Value accepting PENDING or PROGRESS.
type statusValue struct {
	status db.TaskStatus
}

var _ pflag.Value = (*statusValue)(nil)

func newStatusValue(def db.TaskStatus) *statusValue {
	return &statusValue{status: def}
}

func (v *statusValue) String() string { return string(v.status) }

func (v *statusValue) Set(s string) error {
	st, err := db.ParseTaskStatus(s)
	if err != nil {
		return err
	}
	v.status = st
	return nil
}

func (v *statusValue) Type() string { return "status" }

func statusColor(s db.TaskStatus) lipgloss.Color {
	switch s {
	case db.TaskProgress:
		return "3"
	case db.TaskFinished:
		return "2"
	default:
		return "241"
	}
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
