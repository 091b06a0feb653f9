package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/gateway"
	"github.com/caredesk/caredesk/internal/staff"
)

// StaffSavedMsg is sent when the save saga finishes, fully or partially.
type StaffSavedMsg struct {
	Member  *staff.Staff
	Outcome gateway.SaveOutcome
}

// ErrorMsg is sent when the save fails before the entity is persisted.
type ErrorMsg struct {
	Error error
}

var (
	savingLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	savingElapsedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))
)

// SavingScreen displays a spinner while the save saga runs.
type SavingScreen struct {
	spinner   spinner.Model
	label     string
	startTime time.Time
	cancelled bool
	width     int
	height    int
}

// NewSavingScreen creates a saving screen with the given status label.
func NewSavingScreen(label string) *SavingScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return &SavingScreen{
		spinner:   sp,
		label:     label,
		startTime: time.Now(),
	}
}

// Init implements tea.Model
func (s *SavingScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model
func (s *SavingScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	return s, nil
}

// View implements tea.Model
func (s *SavingScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	elapsed := time.Since(s.startTime)

	var sb strings.Builder
	sb.WriteString(s.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(savingLabelStyle.Render(s.label))
	sb.WriteString("\n\n")
	sb.WriteString(savingElapsedStyle.Render(fmt.Sprintf("Elapsed: %.1fs", elapsed.Seconds())))
	sb.WriteString("\n")

	return sb.String()
}

// Cancelled returns true if the user cancelled
func (s *SavingScreen) Cancelled() bool { return s.cancelled }

// CompletionScreen displays the save outcome.
type CompletionScreen struct {
	member  *staff.Staff
	outcome gateway.SaveOutcome
	done    bool
	width   int
	height  int
}

// NewCompletionScreen creates a completion screen from the save result.
func NewCompletionScreen(msg StaffSavedMsg) *CompletionScreen {
	return &CompletionScreen{
		member:  msg.Member,
		outcome: msg.Outcome,
	}
}

// Init implements tea.Model
func (s *CompletionScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *CompletionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

// View implements tea.Model
func (s *CompletionScreen) View() string {
	var sb strings.Builder

	switch s.outcome {
	case gateway.SavedPermissionsFailed:
		sb.WriteString(components.WarnStyle.Render("⚠ Saved with incomplete permissions"))
		sb.WriteString("\n\n")
		sb.WriteString("The staff member was saved, but the permission grants could not\n")
		sb.WriteString("be written. Re-open the record to retry the grants.\n")
	default:
		sb.WriteString(components.SuccessStyle.Render("✓ Staff member saved"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(components.TitleStyle.Render("Summary:"))
	sb.WriteString("\n")

	stats := []struct {
		label string
		value string
	}{
		{"ID", s.member.ID},
		{"Name", s.member.Name},
		{"Email", s.member.Email},
		{"Roles", strings.Join(s.member.Roles, ", ")},
	}
	for _, stat := range stats {
		sb.WriteString("  ")
		sb.WriteString(savingLabelStyle.Render(stat.label + ":"))
		sb.WriteString(" ")
		sb.WriteString(stat.value)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(components.HintStyle.Render("Press Enter or q to exit"))

	return sb.String()
}

// Done returns true if the user is finished
func (s *CompletionScreen) Done() bool { return s.done }

// ErrorScreen displays an error that stopped the wizard.
type ErrorScreen struct {
	err    error
	done   bool
	width  int
	height int
}

// NewErrorScreen creates a new error screen
func NewErrorScreen(err error) *ErrorScreen {
	return &ErrorScreen{err: err}
}

// Init implements tea.Model
func (s *ErrorScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	return s, nil
}

// View implements tea.Model
func (s *ErrorScreen) View() string {
	var sb strings.Builder

	sb.WriteString(components.ErrorStyle.Render("✗ Save failed"))
	sb.WriteString("\n\n")
	sb.WriteString(components.TitleStyle.Render("Error:"))
	sb.WriteString("\n")
	sb.WriteString("  ")
	sb.WriteString(s.err.Error())
	sb.WriteString("\n\n")
	sb.WriteString(components.HintStyle.Render("Press Enter or q to exit"))

	return sb.String()
}

// Done returns true if the user is finished
func (s *ErrorScreen) Done() bool { return s.done }
