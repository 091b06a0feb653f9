package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/flow/rules"
)

type shareEntry struct {
	name  string
	share string
}

// SharesScreen edits the revenue-share splits. The share percentage is
// string-bound; Values coerces it, so junk input becomes 0 and fails the
// positive-share check instead of crashing the form.
type SharesScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError
	entries   []shareEntry
	more      bool

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewSharesScreen creates the share editor with the current entries plus
// one blank slot at the end.
func NewSharesScreen(shares []flow.Entry, errs []flow.FieldError) *SharesScreen {
	s := &SharesScreen{
		helpPanel: components.NewHelpPanel(),
		errs:      errs,
		entries:   make([]shareEntry, len(shares), len(shares)+1),
	}
	s.helpPanel.SetField("share_procedures")

	for i, e := range shares {
		name, _ := e["name"].(string)
		share := ""
		switch v := e["share"].(type) {
		case float64:
			share = fmt.Sprintf("%g", v)
		case string:
			share = v
		}
		s.entries[i] = shareEntry{name: name, share: share}
	}
	s.entries = append(s.entries, shareEntry{})

	groups := make([]*huh.Group, 0, len(s.entries)+1)
	for i := range s.entries {
		entry := &s.entries[i]
		title := fmt.Sprintf("Procedure %d", i+1)
		if i == len(s.entries)-1 {
			title += " (leave blank to skip)"
		}
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Key(fmt.Sprintf("share_%d_name", i)).
				Title(title+" · Name").
				Value(&entry.name),

			huh.NewInput().
				Key(fmt.Sprintf("share_%d_value", i)).
				Title("Share (%)").
				Value(&entry.share),
		))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Key("share_more").
			Title("Add another procedure?").
			Value(&s.more),
	))

	s.form = huh.NewForm(groups...).WithShowHelp(false)
	return s
}

// More reports whether the user asked for another blank entry.
func (s *SharesScreen) More() bool { return s.more }

// Values returns the non-empty entries with the share coerced to a number.
func (s *SharesScreen) Values() map[string]any {
	entries := []flow.Entry{}
	for _, e := range s.entries {
		if strings.TrimSpace(e.name) == "" && strings.TrimSpace(e.share) == "" {
			continue
		}
		entries = append(entries, flow.Entry{"name": e.name, "share": rules.Number(e.share)})
	}
	return map[string]any{"share_procedures": entries}
}

// Init implements tea.Model
func (s *SharesScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SharesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *SharesScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("SHARE PROCEDURES")

	parts := []string{title, ""}
	if banner := components.ErrorBanner(s.errs); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Next entry | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *SharesScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *SharesScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *SharesScreen) Back() bool { return s.back }
