package wizard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/cmd/caredesk/wizard/screens"
	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/gateway"
	"github.com/caredesk/caredesk/internal/refdata"
	"github.com/caredesk/caredesk/internal/staff"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseBiography Phase = iota
	PhasePermissions
	PhaseQualifications
	PhaseServices
	PhaseTimings
	PhaseFAQ
	PhaseShares
	PhaseReview
	PhaseSaveDraft
	PhaseSaving
	PhaseComplete
	PhaseError
)

// StaffOptions configures a staff onboarding session.
type StaffOptions struct {
	// EditID loads an existing staff member instead of starting blank.
	EditID string
	// DraftPath resumes from a YAML draft written by a previous session.
	DraftPath string
	Log       zerolog.Logger
}

// Wizard is the main orchestrator for the staff onboarding interface. It
// owns the flow controller; screens only collect values and every
// transition goes through the controller so the step rules hold no matter
// how the user navigates.
type Wizard struct {
	ctx    context.Context
	client *gateway.Client
	log    zerolog.Logger

	ctrl    *flow.Controller
	refset  *refdata.Set
	grants  []string
	editing bool

	phase Phase

	biographyScreen   *screens.BiographyScreen
	permissionsScreen *screens.PermissionsScreen
	listScreen        *screens.ListScreen
	timingsScreen     *screens.TimingsScreen
	faqScreen         *screens.FAQScreen
	sharesScreen      *screens.SharesScreen
	reviewScreen      *screens.ReviewScreen
	savingScreen      *screens.SavingScreen
	completionScreen  *screens.CompletionScreen
	errorScreen       *screens.ErrorScreen

	saveDraftForm *huh.Form
	draftPath     string

	width  int
	height int

	cancelled bool
	finished  bool
	err       error
}

// NewWizard creates the orchestrator over a prepared controller and
// reference set.
func NewWizard(ctx context.Context, client *gateway.Client, ctrl *flow.Controller, refset *refdata.Set, grants []string, editing bool, log zerolog.Logger) *Wizard {
	w := &Wizard{
		ctx:     ctx,
		client:  client,
		log:     log,
		ctrl:    ctrl,
		refset:  refset,
		grants:  grants,
		editing: editing,
		phase:   PhaseBiography,
	}
	w.biographyScreen = w.newBiographyScreen(nil)
	return w
}

func (w *Wizard) newBiographyScreen(errs []flow.FieldError) *screens.BiographyScreen {
	return screens.NewBiographyScreen(w.ctrl.State(), w.refset.Roles, !w.editing, errs)
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.biographyScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseBiography:
		return w.updateBiography(msg)
	case PhasePermissions:
		return w.updatePermissions(msg)
	case PhaseQualifications, PhaseServices:
		return w.updateList(msg)
	case PhaseTimings:
		return w.updateTimings(msg)
	case PhaseFAQ:
		return w.updateFAQ(msg)
	case PhaseShares:
		return w.updateShares(msg)
	case PhaseReview:
		return w.updateReview(msg)
	case PhaseSaveDraft:
		return w.updateSaveDraft(msg)
	case PhaseSaving:
		return w.updateSaving(msg)
	case PhaseComplete:
		return w.updateComplete(msg)
	case PhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	header := components.Stepper(w.ctrl.VisibleSteps(), w.ctrl.CurrentID())

	var body string
	switch w.phase {
	case PhaseBiography:
		body = w.biographyScreen.View()
	case PhasePermissions:
		body = w.permissionsScreen.View()
	case PhaseQualifications, PhaseServices:
		body = w.listScreen.View()
	case PhaseTimings:
		body = w.timingsScreen.View()
	case PhaseFAQ:
		body = w.faqScreen.View()
	case PhaseShares:
		body = w.sharesScreen.View()
	case PhaseReview:
		body = w.reviewScreen.View()
	case PhaseSaveDraft:
		body = w.viewSaveDraft()
	case PhaseSaving:
		body = w.savingScreen.View()
	case PhaseComplete:
		return w.completionScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

// transitionToStep opens the screen for the controller's current step,
// surfacing any retained validation failures.
func (w *Wizard) transitionToStep(errs []flow.FieldError) (tea.Model, tea.Cmd) {
	st := w.ctrl.State()

	switch w.ctrl.CurrentID() {
	case staff.StepBiography:
		w.phase = PhaseBiography
		w.biographyScreen = w.newBiographyScreen(errs)
		return w, w.biographyScreen.Init()

	case staff.StepQualifications:
		w.phase = PhaseQualifications
		w.listScreen = screens.NewListScreen("qualifications", "Qualifications", st.Strings("qualifications"), errs)
		return w, w.listScreen.Init()

	case staff.StepServices:
		w.phase = PhaseServices
		w.listScreen = screens.NewListScreen("services", "Services", st.Strings("services"), errs)
		return w, w.listScreen.Init()

	case staff.StepTimings:
		w.phase = PhaseTimings
		w.timingsScreen = screens.NewTimingsScreen(st.Entries("timings"), errs)
		return w, w.timingsScreen.Init()

	case staff.StepFAQ:
		w.phase = PhaseFAQ
		w.faqScreen = screens.NewFAQScreen(st.Entries("faqs"), errs)
		return w, w.faqScreen.Init()

	case staff.StepShares:
		w.phase = PhaseShares
		w.sharesScreen = screens.NewSharesScreen(st.Entries("share_procedures"), errs)
		return w, w.sharesScreen.Init()

	case staff.StepReview:
		return w.transitionToReview()
	}

	return w, nil
}

// advance applies the collected values and asks the controller to move on.
// On a validation failure the same step is reopened with the error list.
func (w *Wizard) advance(values map[string]any) (tea.Model, tea.Cmd) {
	before := w.ctrl.CurrentID()
	w.ctrl.Apply(values)

	if err := w.ctrl.Next(); err != nil {
		return w.transitionToStep(w.ctrl.Errors())
	}

	// Role selection decides what comes after biography: the permission
	// panels for regular roles, or straight to review when the collapsed
	// admin form has nowhere left to go.
	if before == staff.StepBiography {
		if staff.IsAdmin(w.ctrl.State()) {
			return w.transitionToReview()
		}
		return w.transitionToPermissions()
	}

	if w.ctrl.CurrentID() == before && w.ctrl.AtLast() {
		return w.transitionToReview()
	}

	return w.transitionToStep(nil)
}

// retreat moves back one step without validating.
func (w *Wizard) retreat() (tea.Model, tea.Cmd) {
	w.ctrl.Previous()
	return w.transitionToStep(nil)
}

func (w *Wizard) transitionToPermissions() (tea.Model, tea.Cmd) {
	st := w.ctrl.State()
	groups := staff.GroupGrants(w.refset, st.Strings("roles"), w.grants)
	if len(groups) == 0 {
		return w.transitionToStep(nil)
	}
	w.phase = PhasePermissions
	w.permissionsScreen = screens.NewPermissionsScreen(groups)
	return w, w.permissionsScreen.Init()
}

func (w *Wizard) transitionToReview() (tea.Model, tea.Cmd) {
	w.phase = PhaseReview
	member := staff.FromState(w.ctrl.State())
	w.reviewScreen = screens.NewReviewScreen(member, w.grants, w.editing)
	return w, w.reviewScreen.Init()
}

func (w *Wizard) updateBiography(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.biographyScreen.Update(msg)
	if s, ok := model.(*screens.BiographyScreen); ok {
		w.biographyScreen = s
	}

	if w.biographyScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.biographyScreen.Back() {
		// First step; nothing to go back to, reopen clean.
		return w.transitionToStep(nil)
	}
	if w.biographyScreen.Done() {
		return w.advance(w.biographyScreen.Values())
	}

	return w, cmd
}

func (w *Wizard) updatePermissions(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.permissionsScreen.Update(msg)
	if s, ok := model.(*screens.PermissionsScreen); ok {
		w.permissionsScreen = s
	}

	if w.permissionsScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.permissionsScreen.Back() {
		w.ctrl.GoTo(staff.StepBiography)
		return w.transitionToStep(nil)
	}
	if w.permissionsScreen.Done() {
		w.grants = w.permissionsScreen.GrantKeys()
		return w.transitionToStep(nil)
	}

	return w, cmd
}

func (w *Wizard) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.listScreen.Update(msg)
	if s, ok := model.(*screens.ListScreen); ok {
		w.listScreen = s
	}

	if w.listScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.listScreen.Back() {
		return w.retreat()
	}
	if w.listScreen.Done() {
		return w.advance(w.listScreen.Values())
	}

	return w, cmd
}

func (w *Wizard) updateTimings(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.timingsScreen.Update(msg)
	if s, ok := model.(*screens.TimingsScreen); ok {
		w.timingsScreen = s
	}

	if w.timingsScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.timingsScreen.Back() {
		return w.retreat()
	}
	if w.timingsScreen.Done() {
		return w.advance(w.timingsScreen.Values())
	}

	return w, cmd
}

func (w *Wizard) updateFAQ(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.faqScreen.Update(msg)
	if s, ok := model.(*screens.FAQScreen); ok {
		w.faqScreen = s
	}

	if w.faqScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.faqScreen.Back() {
		return w.retreat()
	}
	if w.faqScreen.Done() {
		if w.faqScreen.More() {
			// Keep what was typed and reopen with a fresh blank slot.
			w.ctrl.Apply(w.faqScreen.Values())
			return w.transitionToStep(nil)
		}
		return w.advance(w.faqScreen.Values())
	}

	return w, cmd
}

func (w *Wizard) updateShares(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.sharesScreen.Update(msg)
	if s, ok := model.(*screens.SharesScreen); ok {
		w.sharesScreen = s
	}

	if w.sharesScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.sharesScreen.Back() {
		return w.retreat()
	}
	if w.sharesScreen.Done() {
		if w.sharesScreen.More() {
			w.ctrl.Apply(w.sharesScreen.Values())
			return w.transitionToStep(nil)
		}
		return w.advance(w.sharesScreen.Values())
	}

	return w, cmd
}

func (w *Wizard) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.reviewScreen.Update(msg)
	if s, ok := model.(*screens.ReviewScreen); ok {
		w.reviewScreen = s
	}

	if w.reviewScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.reviewScreen.Done() {
		switch w.reviewScreen.Action() {
		case screens.ReviewActionBack:
			return w.retreat()

		case screens.ReviewActionSave:
			// Final whole-form pass. On failure the controller is already
			// repositioned on the step owning the first error.
			if errs := w.ctrl.ValidateAll(); len(errs) > 0 {
				return w.transitionToStep(errs)
			}
			return w.startSave()

		case screens.ReviewActionSaveDraft:
			return w.transitionToSaveDraft()

		case screens.ReviewActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}

	return w, cmd
}

func (w *Wizard) transitionToSaveDraft() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveDraft
	if w.draftPath == "" {
		w.draftPath = "staff-draft.yaml"
	}

	w.saveDraftForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("draft_path").
				Title("Save draft to").
				Description("Enter the path for the YAML draft file").
				Value(&w.draftPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return w, w.saveDraftForm.Init()
}

func (w *Wizard) updateSaveDraft(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return w.transitionToReview()
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveDraftForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveDraftForm = f
	}

	if w.saveDraftForm.State == huh.StateCompleted {
		if err := SaveDraft(w.ctrl.State(), w.grants, w.draftPath); err != nil {
			w.err = err
			w.phase = PhaseError
			w.errorScreen = screens.NewErrorScreen(err)
			return w, nil
		}
		w.log.Info().Str("path", w.draftPath).Msg("draft saved")

		model, cmd := w.transitionToReview()
		w.reviewScreen.SetNotice("Draft saved to " + w.draftPath)
		return model, cmd
	}

	return w, cmd
}

func (w *Wizard) viewSaveDraft() string {
	title := components.TitleStyle.Render("Save Draft")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		w.saveDraftForm.View(),
		"",
		"Enter: Save | Esc: Back",
	)
}

// startSave runs the save saga off the UI loop: entity first, grants
// second, no rollback on a grants failure.
func (w *Wizard) startSave() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaving
	label := "Creating staff member..."
	if w.editing {
		label = "Saving changes..."
	}
	w.savingScreen = screens.NewSavingScreen(label)

	member := staff.FromState(w.ctrl.State())
	grants := w.grants

	return w, tea.Batch(w.savingScreen.Init(), func() tea.Msg {
		saved, outcome, err := w.client.SaveStaff(w.ctx, member, grants)
		if outcome == gateway.SaveFailed {
			return screens.ErrorMsg{Error: err}
		}
		return screens.StaffSavedMsg{Member: saved, Outcome: outcome}
	})
}

func (w *Wizard) updateSaving(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.StaffSavedMsg:
		w.phase = PhaseComplete
		w.completionScreen = screens.NewCompletionScreen(msg)
		return w, nil

	case screens.ErrorMsg:
		w.phase = PhaseError
		w.err = msg.Error
		w.errorScreen = screens.NewErrorScreen(msg.Error)
		return w, nil
	}

	model, cmd := w.savingScreen.Update(msg)
	if s, ok := model.(*screens.SavingScreen); ok {
		w.savingScreen = s
	}

	if w.savingScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

func (w *Wizard) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.completionScreen.Update(msg)
	if s, ok := model.(*screens.CompletionScreen); ok {
		w.completionScreen = s
	}

	if w.completionScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if s, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = s
	}

	if w.errorScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

// RunStaff starts the interactive staff onboarding wizard. Reference data
// is fetched up front; the form never opens on a partial catalog.
func RunStaff(ctx context.Context, client *gateway.Client, opts StaffOptions) error {
	refset, err := refdata.Fetch(ctx, client)
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}

	state := staff.NewState()
	var grants []string
	editing := false

	switch {
	case opts.EditID != "":
		member, err := client.GetStaff(ctx, opts.EditID)
		if err != nil {
			return fmt.Errorf("loading staff member: %w", err)
		}
		held, err := client.StaffGrants(ctx, opts.EditID)
		if err != nil {
			return fmt.Errorf("loading grants: %w", err)
		}
		state = staff.StateOf(member)
		grants = held
		editing = true

	case opts.DraftPath != "":
		draftState, draftGrants, err := LoadDraft(opts.DraftPath)
		if err != nil {
			return fmt.Errorf("loading draft: %w", err)
		}
		state = draftState
		grants = draftGrants
	}

	ctrl := flow.NewController(staff.NewFlow(), state)

	w := NewWizard(ctx, client, ctrl, refset, grants, editing, opts.Log)
	p := tea.NewProgram(w, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if fw, ok := finalModel.(*Wizard); ok {
		if fw.cancelled {
			return nil
		}
		if fw.err != nil {
			return fw.err
		}
	}

	return nil
}
