// Package viewer provides a Bubbletea grid of projects for `todos view`.
package viewer

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/randalmurphal/todos/internal/db"
)

// Source supplies the data shown in the grid.
type Source interface {
	ListProjects(ctx context.Context) ([]db.Project, error)
	ProjectDetails(ctx context.Context, projectID int64) (*db.ProjectDetails, error)
}

// Styles contains the visual styling for the viewer.
type Styles struct {
	Title  lipgloss.Style
	Error  lipgloss.Style
	Subtle lipgloss.Style
	Pane   lipgloss.Style
}

// DefaultStyles returns the default viewer styling.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Pane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	// title, blank line, help line and table borders
	chromeHeight = 6
)

// Model is the tea.Model behind `todos view`.
type Model struct {
	ctx    context.Context
	source Source
	styles Styles
	table  table.Model

	projects []db.Project
	details  *db.ProjectDetails
	loaded   bool
	err      error
	width    int
	height   int
}

type projectsLoadedMsg struct {
	projects []db.Project
}

type detailsLoadedMsg struct {
	details *db.ProjectDetails
}

type loadFailedMsg struct {
	err error
}

// New creates a viewer model sized width x height.
func New(ctx context.Context, source Source, width, height int) *Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	m := &Model{
		ctx:    ctx,
		source: source,
		styles: DefaultStyles(),
		table:  t,
	}
	m.resize(width, height)
	return m
}

// Run shows the grid until the user quits.
func Run(ctx context.Context, source Source, opts ...tea.ProgramOption) error {
	width, height := defaultWidth, defaultHeight
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	m := New(ctx, source, width, height)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	if fm, ok := final.(*Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func columns(width int) []table.Column {
	idW := 6
	rest := width - idW - 8
	if rest < 20 {
		rest = 20
	}
	return []table.Column{
		{Title: "ID", Width: idW},
		{Title: "Project", Width: rest / 2},
		{Title: "Manager", Width: rest - rest/2},
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	h := height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
}

func (m *Model) loadProjects() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.source.ListProjects(m.ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return projectsLoadedMsg{projects: projects}
	}
}

func (m *Model) loadDetails(id int64) tea.Cmd {
	return func() tea.Msg {
		details, err := m.source.ProjectDetails(m.ctx, id)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return detailsLoadedMsg{details: details}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadProjects()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.details != nil {
				m.details = nil
				return m, nil
			}
			return m, tea.Quit
		case "r":
			m.details = nil
			return m, m.loadProjects()
		case "enter":
			if p, ok := m.selected(); ok {
				return m, m.loadDetails(p.ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case projectsLoadedMsg:
		m.loaded = true
		m.err = nil
		m.projects = msg.projects
		rows := make([]table.Row, 0, len(msg.projects))
		for _, p := range msg.projects {
			rows = append(rows, table.Row{strconv.FormatInt(p.ID, 10), p.Name, p.ManagerName})
		}
		m.table.SetRows(rows)
		return m, nil

	case detailsLoadedMsg:
		m.details = msg.details
		return m, nil

	case loadFailedMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) selected() (db.Project, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.projects) {
		return db.Project{}, false
	}
	return m.projects[i], true
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Todo Management"))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case !m.loaded:
		b.WriteString(m.styles.Subtle.Render("Loading projects..."))
		b.WriteString("\n")
	case len(m.projects) == 0:
		b.WriteString(m.styles.Subtle.Render("No projects yet. Create one with 'todos create'."))
		b.WriteString("\n")
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.details != nil {
		b.WriteString(m.styles.Pane.Render(renderDetails(m.details)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Subtle.Render("↑/↓ move • enter members • r reload • q quit"))
	return b.String()
}

func renderDetails(d *db.ProjectDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (manager: %s)\n", d.Name, d.ManagerName)
	if len(d.Members) == 0 {
		b.WriteString("No members assigned to project")
		return b.String()
	}
	for i, mem := range d.Members {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s (%s)", mem.UserID, mem.FullName, mem.Username)
	}
	return b.String()
}
