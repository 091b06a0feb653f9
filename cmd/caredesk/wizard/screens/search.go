package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/visit"
)

// SearchResultsMsg carries the patients matching a query. Query is echoed
// back so stale responses can be dropped after further typing.
type SearchResultsMsg struct {
	Query    string
	Patients []visit.Patient
}

// SearchFailedMsg is sent when the lookup itself errors.
type SearchFailedMsg struct {
	Query string
	Error error
}

var (
	resultStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	resultSelectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)
)

// PatientSearchScreen is a live search box over the patient registry. Each
// keystroke hands the query to onQuery; the wizard debounces the backend
// call and posts SearchResultsMsg when a response lands.
type PatientSearchScreen struct {
	ti       textinput.Model
	onQuery  func(string)
	lastSent string

	results  []visit.Patient
	failure  string
	cursor   int
	selected *visit.Patient

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewPatientSearchScreen creates the search screen. onQuery is invoked on
// every query change with the current text.
func NewPatientSearchScreen(onQuery func(string)) *PatientSearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Name or MRN"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	return &PatientSearchScreen{
		ti:      ti,
		onQuery: onQuery,
	}
}

// Selected returns the chosen patient, nil until a selection is made.
func (s *PatientSearchScreen) Selected() *visit.Patient { return s.selected }

// Init implements tea.Model
func (s *PatientSearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s *PatientSearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.back = true
			return s, nil
		case "up":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil
		case "down":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
			return s, nil
		case "enter":
			if len(s.results) > 0 && s.cursor < len(s.results) {
				p := s.results[s.cursor]
				s.selected = &p
				s.done = true
			}
			return s, nil
		}

	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case SearchResultsMsg:
		// Drop responses for queries the user has already typed past.
		if msg.Query == s.ti.Value() {
			s.results = msg.Patients
			s.failure = ""
			s.cursor = 0
		}
		return s, nil

	case SearchFailedMsg:
		if msg.Query == s.ti.Value() {
			s.failure = msg.Error.Error()
			s.results = nil
			s.cursor = 0
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.ti, cmd = s.ti.Update(msg)

	if q := s.ti.Value(); q != s.lastSent {
		s.lastSent = q
		s.onQuery(q)
	}

	return s, cmd
}

// View implements tea.Model
func (s *PatientSearchScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("PATIENT SEARCH")
	subtitle := components.SubtitleStyle.Render("Results refresh as you type")

	var sb strings.Builder
	sb.WriteString(s.ti.View())
	sb.WriteString("\n\n")

	switch {
	case s.failure != "":
		sb.WriteString(components.ErrorStyle.Render("✗ " + s.failure))
	case len(s.results) == 0 && s.ti.Value() != "":
		sb.WriteString(components.HintStyle.Render("No matches"))
	default:
		for i, p := range s.results {
			line := fmt.Sprintf("%s  (MRN %s, born %s)", p.Name, p.MRN, p.BirthDate)
			if i == s.cursor {
				sb.WriteString(resultSelectedStyle.Render("› " + line))
			} else {
				sb.WriteString(resultStyle.Render("  " + line))
			}
			sb.WriteString("\n")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		sb.String(),
		"",
		"↑/↓: Select | Enter: Confirm | Ctrl+C: Cancel",
	)
}

// Done returns true if a patient was selected
func (s *PatientSearchScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *PatientSearchScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *PatientSearchScreen) Back() bool { return s.back }
