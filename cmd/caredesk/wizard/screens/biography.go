package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/refdata"
)

// BiographyScreen edits the identity fields and the role selection. Field
// checks are deliberately left to the step validator so that the failure
// list is assembled in one place; the screen only collects values.
type BiographyScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	errs      []flow.FieldError

	name     string
	email    string
	phone    string
	password string
	roles    []string

	creating  bool
	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewBiographyScreen creates the biography screen, prefilled from the form
// state. creating toggles the password title between "set" and "change".
func NewBiographyScreen(st *flow.State, available []refdata.Role, creating bool, errs []flow.FieldError) *BiographyScreen {
	s := &BiographyScreen{
		helpPanel: components.NewHelpPanel(),
		errs:      errs,
		name:      st.String("name"),
		email:     st.String("email"),
		phone:     st.String("phone"),
		password:  st.String("password"),
		roles:     st.Strings("roles"),
		creating:  creating,
	}

	passwordTitle := "Password"
	passwordDesc := "Minimum 6 characters"
	if !creating {
		passwordDesc = "Leave blank to keep the current password"
	}

	roleOptions := make([]huh.Option[string], 0, len(available))
	for _, r := range available {
		roleOptions = append(roleOptions, huh.NewOption(r.Name, r.Name))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Full Name").
				Value(&s.name),

			huh.NewInput().
				Key("email").
				Title("Email").
				Description("user@domain.tld").
				Value(&s.email),

			huh.NewInput().
				Key("phone").
				Title("Phone").
				Value(&s.phone),

			huh.NewInput().
				Key("password").
				Title(passwordTitle).
				Description(passwordDesc).
				EchoMode(huh.EchoModePassword).
				Value(&s.password),

			huh.NewMultiSelect[string]().
				Key("roles").
				Title("Roles").
				Options(roleOptions...).
				Value(&s.roles),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// Values returns the collected field values keyed the way the step
// validator expects them.
func (s *BiographyScreen) Values() map[string]any {
	return map[string]any{
		"name":     s.name,
		"email":    s.email,
		"phone":    s.phone,
		"password": s.password,
		"roles":    s.roles,
	}
}

// Init implements tea.Model
func (s *BiographyScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *BiographyScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *BiographyScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("BIOGRAPHY DATA")

	parts := []string{title, ""}
	if banner := components.ErrorBanner(s.errs); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: Next field | Enter: Submit | Esc: Back | Ctrl+C: Cancel",
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Done returns true if the form was completed
func (s *BiographyScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *BiographyScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back a step
func (s *BiographyScreen) Back() bool { return s.back }
