package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	todoerrors "github.com/randalmurphal/todos/internal/errors"
)

// PrintError prints an error to w with appropriate formatting.
// A TodoError uses its user-friendly form (or JSON with --json);
// anything else prints as a one-line message.
func PrintError(w io.Writer, err error, opts GlobalOptions) {
	te := todoerrors.AsTodoError(err)

	if opts.JSON {
		var payload any = map[string]string{"error": err.Error()}
		if te != nil {
			payload = te
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(payload)
		return
	}

	if te != nil {
		_, _ = fmt.Fprintln(w, te.UserMessage())
		if opts.Verbose {
			// In verbose mode, also print the error code and cause
			_, _ = fmt.Fprintf(w, "\nCode: %s\n", te.Code)
			if te.Cause != nil {
				_, _ = fmt.Fprintf(w, "Cause: %v\n", te.Cause)
			}
		}
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// PrintCommandError reports an error returned by executing root. Cobra prints
// no usage when command lookup fails, so an unknown command gets it here.
func PrintCommandError(w io.Writer, root *cobra.Command, err error, opts GlobalOptions) {
	PrintError(w, err, opts)
	if opts.JSON || !isUnknownCommand(err) {
		return
	}
	_, _ = fmt.Fprintf(w, "Run '%s --help' for usage.\n\n", root.CommandPath())
	_, _ = fmt.Fprint(w, root.UsageString())
}

func isUnknownCommand(err error) bool {
	return strings.HasPrefix(err.Error(), "unknown command ")
}
