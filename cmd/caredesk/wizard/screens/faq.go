package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/flow"
)

type faqEntry struct {
	question string
	answer   string
}

// FAQScreen edits the question/answer entries of the profile. It always
// shows one trailing blank entry; leaving both fields empty drops it, so
// the list can also be emptied by blanking entries out.
type FAQScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError
	entries   []faqEntry
	more      bool

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewFAQScreen creates the FAQ editor with the current entries plus one
// blank slot at the end.
func NewFAQScreen(faqs []flow.Entry, errs []flow.FieldError) *FAQScreen {
	s := &FAQScreen{
		helpPanel: components.NewHelpPanel(),
		errs:      errs,
		entries:   make([]faqEntry, len(faqs), len(faqs)+1),
	}
	s.helpPanel.SetField("faq")

	for i, e := range faqs {
		q, _ := e["question"].(string)
		a, _ := e["answer"].(string)
		s.entries[i] = faqEntry{question: q, answer: a}
	}
	s.entries = append(s.entries, faqEntry{})

	groups := make([]*huh.Group, 0, len(s.entries)+1)
	for i := range s.entries {
		entry := &s.entries[i]
		title := fmt.Sprintf("FAQ %d", i+1)
		if i == len(s.entries)-1 {
			title += " (leave blank to skip)"
		}
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Key(fmt.Sprintf("faq_%d_question", i)).
				Title(title+" · Question").
				Value(&entry.question),

			huh.NewText().
				Key(fmt.Sprintf("faq_%d_answer", i)).
				Title("Answer").
				Value(&entry.answer),
		))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Key("faq_more").
			Title("Add another FAQ entry?").
			Value(&s.more),
	))

	s.form = huh.NewForm(groups...).WithShowHelp(false)
	return s
}

// More reports whether the user asked for another blank entry.
func (s *FAQScreen) More() bool { return s.more }

// Values returns the non-empty entries. Half-filled entries are kept so the
// step validator can complain about the missing side.
func (s *FAQScreen) Values() map[string]any {
	entries := []flow.Entry{}
	for _, e := range s.entries {
		if strings.TrimSpace(e.question) == "" && strings.TrimSpace(e.answer) == "" {
			continue
		}
		entries = append(entries, flow.Entry{"question": e.question, "answer": e.answer})
	}
	return map[string]any{"faqs": entries}
}

// Init implements tea.Model
func (s *FAQScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *FAQScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *FAQScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("FAQ")

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
func (s *FAQScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *FAQScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *FAQScreen) Back() bool { return s.back }
