package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/internal/staff"
)

// PermissionsScreen shows one grant panel per selected role. The privileged
// role never reaches this screen; its grants are implicit.
type PermissionsScreen struct {
	form      *huh.Form
	groups    []staff.PermissionGroup
	selected  [][]string
	done      bool
	cancelled bool
	back      bool
	width     int
	height    int
}

// NewPermissionsScreen creates a grant panel per role group, pre-ticking
// the keys already held.
func NewPermissionsScreen(groups []staff.PermissionGroup) *PermissionsScreen {
	s := &PermissionsScreen{
		groups:   groups,
		selected: make([][]string, len(groups)),
	}

	huhGroups := make([]*huh.Group, 0, len(groups))
	for i, g := range groups {
		options := make([]huh.Option[string], 0, len(g.Permissions))
		for _, p := range g.Permissions {
			label := p.Label
			if p.Group != "" {
				label = p.Group + " · " + p.Label
			}
			options = append(options, huh.NewOption(label, p.Key).Selected(g.Granted[p.Key]))
		}

		huhGroups = append(huhGroups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("permissions_"+strings.ToLower(g.Role)).
				Title(g.Role+" permissions").
				Options(options...).
				Value(&s.selected[i]),
		))
	}

	s.form = huh.NewForm(huhGroups...).WithShowHelp(false)
	return s
}

// GrantKeys returns the union of ticked keys across all role panels.
func (s *PermissionsScreen) GrantKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, panel := range s.selected {
		for _, k := range panel {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Init implements tea.Model
func (s *PermissionsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *PermissionsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *PermissionsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("PERMISSIONS")
	subtitle := components.SubtitleStyle.Render("Grants per selected role")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		s.form.View(),
		"",
		"Space: Toggle | Enter: Submit | Esc: Back",
	)
}

// Done returns true if the form was completed
func (s *PermissionsScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *PermissionsScreen) Cancelled() bool { return s.cancelled }

// Back returns true if the user asked to go back
func (s *PermissionsScreen) Back() bool { return s.back }
