package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/flow/rules"
)

// daySlot holds the string-bound inputs for one weekday. Duration stays a
// string in the form; coercion to a number happens in Values, so a garbled
// entry becomes 0 and is caught by the step validator.
type daySlot struct {
	day       string
	available bool
	start     string
	end       string
	duration  string
}

// TimingsScreen edits the weekly consultation hours, one form group per
// weekday.
type TimingsScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError
	slots     []daySlot

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewTimingsScreen creates the weekly schedule editor prefilled from the
// current timing entries.
func NewTimingsScreen(timings []flow.Entry, errs []flow.FieldError) *TimingsScreen {
	s := &TimingsScreen{
		helpPanel: components.NewHelpPanel(),
		errs:      errs,
		slots:     make([]daySlot, len(timings)),
	}
	s.helpPanel.SetField("timings")

	groups := make([]*huh.Group, 0, len(timings))
	for i, e := range timings {
		day, _ := e["day"].(string)
		start, _ := e["start"].(string)
		end, _ := e["end"].(string)
		available, _ := e["available"].(bool)
		duration := ""
		switch v := e["duration"].(type) {
		case float64:
			duration = fmt.Sprintf("%g", v)
		case string:
			duration = v
		}

		s.slots[i] = daySlot{
			day:       day,
			available: available,
			start:     start,
			end:       end,
			duration:  duration,
		}
		slot := &s.slots[i]

		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Key(fmt.Sprintf("timing_%d_available", i)).
				Title(day).
				Affirmative("Available").
				Negative("Off").
				Value(&slot.available),

			huh.NewInput().
				Key(fmt.Sprintf("timing_%d_start", i)).
				Title("Start").
				Description("HH:MM").
				Value(&slot.start),

			huh.NewInput().
				Key(fmt.Sprintf("timing_%d_end", i)).
				Title("End").
				Description("HH:MM").
				Value(&slot.end),

			huh.NewInput().
				Key(fmt.Sprintf("timing_%d_duration", i)).
				Title("Slot duration (minutes)").
				Value(&slot.duration),
		))
	}

	s.form = huh.NewForm(groups...).WithShowHelp(false)
	return s
}

// Values rebuilds the timing entries from the form inputs.
func (s *TimingsScreen) Values() map[string]any {
	entries := make([]flow.Entry, len(s.slots))
	for i, slot := range s.slots {
		entries[i] = flow.Entry{
			"day":       slot.day,
			"available": slot.available,
			"start":     slot.start,
			"end":       slot.end,
			"duration":  rules.Number(slot.duration),
		}
	}
	return map[string]any{"timings": entries}
}

// Init implements tea.Model
func (s *TimingsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *TimingsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *TimingsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("WEEKLY TIMINGS")

	parts := []string{title, ""}
	if banner := components.ErrorBanner(s.errs); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Next day | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *TimingsScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *TimingsScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *TimingsScreen) Back() bool { return s.back }
