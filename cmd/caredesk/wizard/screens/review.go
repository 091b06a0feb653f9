package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/staff"
)

// ReviewAction represents the action selected on the review screen
type ReviewAction int

const (
	// ReviewActionBack returns to the previous screen
	ReviewActionBack ReviewAction = iota
	// ReviewActionSave submits the staff member to the backend
	ReviewActionSave
	// ReviewActionSaveDraft saves the form state to a YAML draft file
	ReviewActionSaveDraft
	// ReviewActionCancel exits the wizard
	ReviewActionCancel
)

const (
	actionBack      = "back"
	actionSave      = "save"
	actionSaveDraft = "save_draft"
	actionCancel    = "cancel"
)

var (
	reviewPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	reviewLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	reviewValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)
)

// ReviewScreen displays the assembled staff member before submission.
type ReviewScreen struct {
	form      *huh.Form
	member    *staff.Staff
	grants    []string
	editing   bool
	action    string
	notice    string
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewReviewScreen creates the review screen for the given entity.
func NewReviewScreen(member *staff.Staff, grants []string, editing bool) *ReviewScreen {
	s := &ReviewScreen{
		member:  member,
		grants:  grants,
		editing: editing,
		action:  actionSave,
	}

	saveLabel := "Create staff member"
	if editing {
		saveLabel = "Save changes"
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption(saveLabel, actionSave),
					huh.NewOption("Save draft to YAML", actionSaveDraft),
					huh.NewOption("Back to edit", actionBack),
					huh.NewOption("Cancel and exit", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// SetNotice displays a one-line status above the action select, used after
// a draft save round-trip.
func (s *ReviewScreen) SetNotice(notice string) {
	s.notice = notice
}

// Action returns the selected review action.
func (s *ReviewScreen) Action() ReviewAction {
	switch s.action {
	case actionSave:
		return ReviewActionSave
	case actionSaveDraft:
		return ReviewActionSaveDraft
	case actionCancel:
		return ReviewActionCancel
	default:
		return ReviewActionBack
	}
}

// Init implements tea.Model
func (s *ReviewScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *ReviewScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.action = actionBack
			s.done = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
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
func (s *ReviewScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("REVIEW")

	parts := []string{title, "", s.renderSummary(), ""}
	if s.notice != "" {
		parts = append(parts, components.SuccessStyle.Render(s.notice), "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		"Enter: Confirm | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *ReviewScreen) renderSummary() string {
	m := s.member
	var sb strings.Builder

	row := func(label, value string) {
		sb.WriteString(reviewLabelStyle.Render(fmt.Sprintf("%-16s", label)))
		sb.WriteString(reviewValueStyle.Render(value))
		sb.WriteString("\n")
	}

	row("Name", m.Name)
	row("Email", m.Email)
	row("Phone", m.Phone)
	row("Roles", strings.Join(m.Roles, ", "))

	if len(m.Roles) == 1 && m.Roles[0] == staff.RoleAdmin {
		sb.WriteString("\n")
		sb.WriteString(components.HintStyle.Render("Admin accounts hold every permission; remaining sections skipped."))
		return reviewPanelStyle.Render(sb.String())
	}

	row("Qualifications", fmt.Sprintf("%d", len(m.Qualifications)))
	row("Services", fmt.Sprintf("%d", len(m.Services)))

	available := 0
	for _, t := range m.Timings {
		if t.Available {
			available++
		}
	}
	row("Available days", fmt.Sprintf("%d/%d", available, len(m.Timings)))
	row("FAQ entries", fmt.Sprintf("%d", len(m.FAQs)))
	row("Procedures", fmt.Sprintf("%d", len(m.Shares)))
	row("Granted keys", fmt.Sprintf("%d", len(s.grants)))

	return reviewPanelStyle.Render(sb.String())
}

// Done returns true if an action was selected
func (s *ReviewScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *ReviewScreen) Cancelled() bool { return s.cancelled }
