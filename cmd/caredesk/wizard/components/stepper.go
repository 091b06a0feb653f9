package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/caredesk/caredesk/internal/flow"
)

var (
	stepActiveStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	stepPendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	stepSepStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
)

// Stepper renders the tab strip above each screen: the visible steps of the
// flow with the current one highlighted. Steps hidden by the role collapse
// never appear, so the strip shrinks live when an admin role is picked.
func Stepper(steps []flow.Step, currentID string) string {
	var sb strings.Builder
	passed := true
	for i, step := range steps {
		if i > 0 {
			sb.WriteString(stepSepStyle.Render(" › "))
		}
		switch {
		case step.ID == currentID:
			passed = false
			sb.WriteString(stepActiveStyle.Render("● " + step.Label))
		case passed:
			sb.WriteString(stepDoneStyle.Render("✓ " + step.Label))
		default:
			sb.WriteString(stepPendingStyle.Render("○ " + step.Label))
		}
	}
	return sb.String()
}

// ErrorBanner renders the validation failures of the current step. The first
// message leads; the rest are listed underneath so nothing is swallowed.
func ErrorBanner(errs []flow.FieldError) string {
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(ErrorStyle.Render("✗ " + errs[0].Message))
	for _, e := range errs[1:] {
		sb.WriteString("\n")
		sb.WriteString(WarnStyle.Render("  · " + e.Message))
	}
	return sb.String()
}
