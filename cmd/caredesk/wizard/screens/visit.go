package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/flow/rules"
	"github.com/caredesk/caredesk/internal/visit"
)

// TriageScreen records the chief complaint and acuity.
type TriageScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError

	complaint string
	level     string

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewTriageScreen creates the triage screen prefilled from the form state.
func NewTriageScreen(st *flow.State, errs []flow.FieldError) *TriageScreen {
	s := &TriageScreen{
		helpPanel: components.NewHelpPanel(),
		errs:      errs,
		complaint: st.String("chief_complaint"),
		level:     fmt.Sprintf("%d", int(st.Number("triage_level"))),
	}
	s.helpPanel.SetField("triage_level")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("chief_complaint").
				Title("Chief Complaint").
				Value(&s.complaint),

			huh.NewSelect[string]().
				Key("triage_level").
				Title("Triage Level").
				Options(
					huh.NewOption("1 · Resuscitation", "1"),
					huh.NewOption("2 · Emergent", "2"),
					huh.NewOption("3 · Urgent", "3"),
					huh.NewOption("4 · Less urgent", "4"),
					huh.NewOption("5 · Non-urgent", "5"),
				).
				Value(&s.level),
		),
	).WithShowHelp(false)

	return s
}

// Values returns the collected triage fields.
func (s *TriageScreen) Values() map[string]any {
	return map[string]any{
		"chief_complaint": s.complaint,
		"triage_level":    rules.Number(s.level),
	}
}

// Init implements tea.Model
func (s *TriageScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *TriageScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *TriageScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("TRIAGE")

	parts := []string{title, ""}
	if banner := components.ErrorBanner(s.errs); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *TriageScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *TriageScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *TriageScreen) Back() bool { return s.back }

// VitalsScreen records one set of vital signs. All inputs are string-bound;
// junk entries coerce to 0 and fail the range checks.
type VitalsScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError

	pulse       string
	systolic    string
	diastolic   string
	temperature string
	respRate    string
	spo2        string

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

func vitalString(st *flow.State, key string) string {
	if st.Get(key) == nil {
		return ""
	}
	return fmt.Sprintf("%g", st.Number(key))
}

// NewVitalsScreen creates the vitals screen prefilled from the form state.
func NewVitalsScreen(st *flow.State, errs []flow.FieldError) *VitalsScreen {
	s := &VitalsScreen{
		helpPanel:   components.NewHelpPanel(),
		errs:        errs,
		pulse:       vitalString(st, "pulse"),
		systolic:    vitalString(st, "systolic"),
		diastolic:   vitalString(st, "diastolic"),
		temperature: vitalString(st, "temperature"),
		respRate:    vitalString(st, "resp_rate"),
		spo2:        vitalString(st, "spo2"),
	}
	s.helpPanel.SetField("vitals")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pulse").
				Title("Pulse (bpm)").
				Value(&s.pulse),

			huh.NewInput().
				Key("systolic").
				Title("Systolic BP (mmHg)").
				Value(&s.systolic),

			huh.NewInput().
				Key("diastolic").
				Title("Diastolic BP (mmHg)").
				Value(&s.diastolic),

			huh.NewInput().
				Key("temperature").
				Title("Temperature (°C)").
				Value(&s.temperature),

			huh.NewInput().
				Key("resp_rate").
				Title("Respiratory rate (/min)").
				Value(&s.respRate),

			huh.NewInput().
				Key("spo2").
				Title("SpO2 (%)").
				Value(&s.spo2),
		),
	).WithShowHelp(false)

	return s
}

// Values returns the coerced vitals.
func (s *VitalsScreen) Values() map[string]any {
	return map[string]any{
		"pulse":       rules.Number(s.pulse),
		"systolic":    rules.Number(s.systolic),
		"diastolic":   rules.Number(s.diastolic),
		"temperature": rules.Number(s.temperature),
		"resp_rate":   rules.Number(s.respRate),
		"spo2":        rules.Number(s.spo2),
	}
}

// Init implements tea.Model
func (s *VitalsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *VitalsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *VitalsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("VITAL SIGNS")

	parts := []string{title, ""}
	if banner := components.ErrorBanner(s.errs); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *VitalsScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *VitalsScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *VitalsScreen) Back() bool { return s.back }

// DispositionScreen records how the visit ends and submits the chart.
type DispositionScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError

	disposition string
	notes       string

	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewDispositionScreen creates the disposition screen prefilled from the
// form state.
func NewDispositionScreen(st *flow.State, errs []flow.FieldError) *DispositionScreen {
	s := &DispositionScreen{
		helpPanel:   components.NewHelpPanel(),
		errs:        errs,
		disposition: st.String("disposition"),
		notes:       st.String("notes"),
	}
	s.helpPanel.SetField("disposition")

	options := make([]huh.Option[string], 0, len(visit.Dispositions))
	for _, d := range visit.Dispositions {
		options = append(options, huh.NewOption(d, d))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("disposition").
				Title("Disposition").
				Options(options...).
				Value(&s.disposition),

			huh.NewText().
				Key("notes").
				Title("Notes").
				Value(&s.notes),
		),
	).WithShowHelp(false)

	return s
}

// Values returns the collected disposition fields.
func (s *DispositionScreen) Values() map[string]any {
	return map[string]any{
		"disposition": s.disposition,
		"notes":       s.notes,
	}
}

// Init implements tea.Model
func (s *DispositionScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *DispositionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *DispositionScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("DISPOSITION")

	parts := []string{title, ""}
	if banner := components.ErrorBanner(s.errs); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit chart | Esc: Back",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *DispositionScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *DispositionScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *DispositionScreen) Back() bool { return s.back }

// VisitSavedMsg is sent when the chart is persisted.
type VisitSavedMsg struct {
	Visit *visit.Visit
}
