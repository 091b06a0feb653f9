package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/flow"
)

// ListScreen edits a repeatable string list as free text, one entry per
// line. Used for both qualifications and services.
type ListScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError

	field string
	title string
	text  string

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewListScreen creates a list editor for the given field, prefilled from
// the current entries.
func NewListScreen(field, title string, values []string, errs []flow.FieldError) *ListScreen {
	s := &ListScreen{
		helpPanel: components.NewHelpPanel(),
		errs:      errs,
		field:     field,
		title:     title,
		text:      strings.Join(values, "\n"),
	}
	s.helpPanel.SetField(field)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key(field).
				Title(title).
				Description("One entry per line").
				Value(&s.text),
		),
	).WithShowHelp(false)

	return s
}

// Values returns the entered lines under the list field. Blank lines are
// kept here; the step validator decides whether blanks are acceptable.
func (s *ListScreen) Values() map[string]any {
	var entries []string
	for _, line := range strings.Split(s.text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	if entries == nil {
		entries = []string{""}
	}
	return map[string]any{s.field: entries}
}

// Init implements tea.Model
func (s *ListScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *ListScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.back = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *ListScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render(strings.ToUpper(s.title))

	parts := []string{title, ""}
	if banner := components.ErrorBanner(s.errs); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Ctrl+J: New line | Enter: Submit | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *ListScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *ListScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *ListScreen) Back() bool { return s.back }
