package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	todoerrors "github.com/randalmurphal/todos/internal/errors"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatPlain
	formatJSON
)

// column describes one table column.
type column struct {
	Title string
	Right bool
	Color lipgloss.Color
}

// printer renders command output in the format chosen by the global flags.
type printer struct {
	out    io.Writer
	format outputFormat
	color  bool
	re     *lipgloss.Renderer
}

func (a *App) printer(cmd *cobra.Command) *printer {
	out := cmd.OutOrStdout()
	p := &printer{
		out:   out,
		color: isTerminal(out),
		re:    lipgloss.NewRenderer(out),
	}
	switch {
	case a.Opts.JSON:
		p.format = formatJSON
	case a.Opts.Plain:
		p.format = formatPlain
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// style returns a foreground style, or a plain one when colour is off.
func (p *printer) style(c lipgloss.Color) lipgloss.Style {
	s := p.re.NewStyle()
	if p.color && c != "" {
		s = s.Foreground(c)
	}
	return s
}

func (p *printer) line(c lipgloss.Color, text string) {
	_, _ = fmt.Fprintln(p.out, p.style(c).Render(text))
}

// idCell renders a row id the way every table shows it: "7.".
func idCell(id int64) string {
	return fmt.Sprintf("%d.", id)
}

// table prints rows under a title. v is what --json emits instead.
func (p *printer) table(title string, cols []column, rows [][]string, v any) error {
	switch p.format {
	case formatJSON:
		return p.json(v)
	case formatPlain:
		w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
		headers := make([]string, len(cols))
		for i, c := range cols {
			headers[i] = strings.ToUpper(c.Title)
		}
		_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, r := range rows {
			_, _ = fmt.Fprintln(w, strings.Join(r, "\t"))
		}
		return w.Flush()
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.style("240")).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := p.re.NewStyle().Padding(0, 1)
			if col < len(cols) && cols[col].Right {
				s = s.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			if col < len(cols) && p.color && cols[col].Color != "" {
				s = s.Foreground(cols[col].Color)
			}
			return s
		})

	_, _ = fmt.Fprintln(p.out, p.style("205").Bold(true).Render(title))
	_, _ = fmt.Fprintln(p.out, t.Render())
	return nil
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// writeResult is the --json form of a write command's outcome.
type writeResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeOutcome reports the result of a store write. A rejected write is
// printed and swallowed so the process still exits 0; any other error is
// returned.
func (p *printer) writeOutcome(err error, success, failure string) error {
	if err == nil {
		if p.format == formatJSON {
			return p.json(writeResult{OK: true, Message: success})
		}
		p.line("2", success)
		return nil
	}

	if !todoerrors.IsWriteRejected(err) {
		return err
	}
	te := todoerrors.AsTodoError(err)

	cause := te.Error()
	if te.Cause != nil {
		cause = te.Cause.Error()
	}

	if p.format == formatJSON {
		return p.json(writeResult{Message: failure, Reason: te.Why, Error: cause})
	}
	p.line("5", failure)
	if te.Why != "" {
		p.line("241", "Why: "+te.Why)
	}
	p.line("1", "ERROR: "+cause)
	return nil
}
