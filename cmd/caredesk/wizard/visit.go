package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/caredesk/caredesk/cmd/caredesk/wizard/components"
	"github.com/caredesk/caredesk/cmd/caredesk/wizard/screens"
	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/gateway"
	"github.com/caredesk/caredesk/internal/util"
	"github.com/caredesk/caredesk/internal/visit"
)

// VisitPhase represents the current phase of the charting wizard.
type VisitPhase int

const (
	VisitPhaseSearch VisitPhase = iota
	VisitPhaseTriage
	VisitPhaseVitals
	VisitPhaseDisposition
	VisitPhaseSaving
	VisitPhaseComplete
	VisitPhaseError
)

// searchDebounce is how long typing has to pause before the registry is
// queried.
const searchDebounce = 300 * time.Millisecond

// VisitWizard drives the emergency-visit charting flow. Patient lookup is
// debounced so the registry sees one request per typing pause rather than
// one per keystroke.
type VisitWizard struct {
	ctx    context.Context
	client *gateway.Client
	log    zerolog.Logger

	ctrl     *flow.Controller
	debounce *util.Debouncer
	send     func(tea.Msg)
	patient  *visit.Patient
	saved    *visit.Visit

	phase VisitPhase

	searchScreen      *screens.PatientSearchScreen
	triageScreen      *screens.TriageScreen
	vitalsScreen      *screens.VitalsScreen
	dispositionScreen *screens.DispositionScreen
	savingScreen      *screens.SavingScreen
	errorScreen       *screens.ErrorScreen

	width  int
	height int

	cancelled bool
	finished  bool
	err       error
}

// NewVisitWizard creates the charting orchestrator. send must be wired to
// the running program before the first keystroke; RunVisit does that.
func NewVisitWizard(ctx context.Context, client *gateway.Client, log zerolog.Logger) *VisitWizard {
	w := &VisitWizard{
		ctx:      ctx,
		client:   client,
		log:      log,
		ctrl:     flow.NewController(visit.NewFlow(), visit.NewState()),
		debounce: util.NewDebouncer(searchDebounce),
		phase:    VisitPhaseSearch,
	}
	w.searchScreen = screens.NewPatientSearchScreen(w.queueSearch)
	return w
}

// SetSend wires the bubbletea program's Send so debounced lookups can post
// their results back into the UI loop.
func (w *VisitWizard) SetSend(send func(tea.Msg)) {
	w.send = send
}

// queueSearch coalesces keystrokes: only the last query of a typing burst
// reaches the backend.
func (w *VisitWizard) queueSearch(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	w.debounce.Trigger(func() {
		patients, err := w.client.SearchPatients(w.ctx, query)
		if w.send == nil {
			return
		}
		if err != nil {
			w.log.Warn().Err(err).Str("query", query).Msg("patient search failed")
			w.send(screens.SearchFailedMsg{Query: query, Error: err})
			return
		}
		w.send(screens.SearchResultsMsg{Query: query, Patients: patients})
	})
}

// Init implements tea.Model.
func (w *VisitWizard) Init() tea.Cmd {
	return w.searchScreen.Init()
}

// Update implements tea.Model.
func (w *VisitWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case VisitPhaseSearch:
		return w.updateSearch(msg)
	case VisitPhaseTriage:
		return w.updateTriage(msg)
	case VisitPhaseVitals:
		return w.updateVitals(msg)
	case VisitPhaseDisposition:
		return w.updateDisposition(msg)
	case VisitPhaseSaving:
		return w.updateSaving(msg)
	case VisitPhaseComplete:
		return w.updateComplete(msg)
	case VisitPhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *VisitWizard) View() string {
	header := components.Stepper(w.ctrl.VisibleSteps(), w.ctrl.CurrentID())

	var body string
	switch w.phase {
	case VisitPhaseSearch:
		body = w.searchScreen.View()
	case VisitPhaseTriage:
		body = w.triageScreen.View()
	case VisitPhaseVitals:
		body = w.vitalsScreen.View()
	case VisitPhaseDisposition:
		body = w.dispositionScreen.View()
	case VisitPhaseSaving:
		body = w.savingScreen.View()
	case VisitPhaseComplete:
		return w.viewComplete()
	case VisitPhaseError:
		return w.errorScreen.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func (w *VisitWizard) transitionToStep(errs []flow.FieldError) (tea.Model, tea.Cmd) {
	st := w.ctrl.State()

	switch w.ctrl.CurrentID() {
	case visit.StepPatient:
		w.phase = VisitPhaseSearch
		w.searchScreen = screens.NewPatientSearchScreen(w.queueSearch)
		return w, w.searchScreen.Init()

	case visit.StepTriage:
		w.phase = VisitPhaseTriage
		w.triageScreen = screens.NewTriageScreen(st, errs)
		return w, w.triageScreen.Init()

	case visit.StepVitals:
		w.phase = VisitPhaseVitals
		w.vitalsScreen = screens.NewVitalsScreen(st, errs)
		return w, w.vitalsScreen.Init()

	case visit.StepDisposition:
		w.phase = VisitPhaseDisposition
		w.dispositionScreen = screens.NewDispositionScreen(st, errs)
		return w, w.dispositionScreen.Init()
	}

	return w, nil
}

func (w *VisitWizard) advance(values map[string]any) (tea.Model, tea.Cmd) {
	before := w.ctrl.CurrentID()
	w.ctrl.Apply(values)

	if err := w.ctrl.Next(); err != nil {
		return w.transitionToStep(w.ctrl.Errors())
	}

	if w.ctrl.CurrentID() == before && w.ctrl.AtLast() {
		return w.startSave()
	}

	return w.transitionToStep(nil)
}

func (w *VisitWizard) retreat() (tea.Model, tea.Cmd) {
	w.ctrl.Previous()
	return w.transitionToStep(nil)
}

func (w *VisitWizard) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.searchScreen.Update(msg)
	if s, ok := model.(*screens.PatientSearchScreen); ok {
		w.searchScreen = s
	}

	if w.searchScreen.Cancelled() {
		w.debounce.Stop()
		w.cancelled = true
		return w, tea.Quit
	}

	if w.searchScreen.Done() {
		w.patient = w.searchScreen.Selected()
		return w.advance(map[string]any{
			"patient_id":   w.patient.ID,
			"patient_name": w.patient.Name,
		})
	}

	return w, cmd
}

func (w *VisitWizard) updateTriage(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.triageScreen.Update(msg)
	if s, ok := model.(*screens.TriageScreen); ok {
		w.triageScreen = s
	}

	if w.triageScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.triageScreen.Back() {
		return w.retreat()
	}
	if w.triageScreen.Done() {
		return w.advance(w.triageScreen.Values())
	}

	return w, cmd
}

func (w *VisitWizard) updateVitals(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.vitalsScreen.Update(msg)
	if s, ok := model.(*screens.VitalsScreen); ok {
		w.vitalsScreen = s
	}

	if w.vitalsScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.vitalsScreen.Back() {
		return w.retreat()
	}
	if w.vitalsScreen.Done() {
		return w.advance(w.vitalsScreen.Values())
	}

	return w, cmd
}

func (w *VisitWizard) updateDisposition(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.dispositionScreen.Update(msg)
	if s, ok := model.(*screens.DispositionScreen); ok {
		w.dispositionScreen = s
	}

	if w.dispositionScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.dispositionScreen.Back() {
		return w.retreat()
	}
	if w.dispositionScreen.Done() {
		return w.advance(w.dispositionScreen.Values())
	}

	return w, cmd
}

func (w *VisitWizard) startSave() (tea.Model, tea.Cmd) {
	w.phase = VisitPhaseSaving
	w.savingScreen = screens.NewSavingScreen("Submitting chart...")

	chart := visit.FromState(w.ctrl.State())

	return w, tea.Batch(w.savingScreen.Init(), func() tea.Msg {
		saved, err := w.client.SaveVisit(w.ctx, chart)
		if err != nil {
			return screens.ErrorMsg{Error: err}
		}
		return screens.VisitSavedMsg{Visit: saved}
	})
}

func (w *VisitWizard) updateSaving(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.VisitSavedMsg:
		w.phase = VisitPhaseComplete
		w.saved = msg.Visit
		return w, nil

	case screens.ErrorMsg:
		w.phase = VisitPhaseError
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

func (w *VisitWizard) viewComplete() string {
	var sb strings.Builder
	sb.WriteString(components.SuccessStyle.Render("✓ Visit chart submitted"))
	sb.WriteString("\n\n")
	if w.patient != nil {
		sb.WriteString(fmt.Sprintf("  Patient:     %s (MRN %s)\n", w.patient.Name, w.patient.MRN))
	}
	if w.saved != nil {
		sb.WriteString(fmt.Sprintf("  Visit ID:    %s\n", w.saved.ID))
		sb.WriteString(fmt.Sprintf("  Disposition: %s\n", w.saved.Disposition))
	}
	sb.WriteString("\n")
	sb.WriteString(components.HintStyle.Render("Press Enter or q to exit"))
	return sb.String()
}

func (w *VisitWizard) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc", "enter", "q":
			w.finished = true
			return w, tea.Quit
		}
	}
	return w, nil
}

func (w *VisitWizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
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

// RunVisit starts the interactive visit charting wizard.
func RunVisit(ctx context.Context, client *gateway.Client, log zerolog.Logger) error {
	w := NewVisitWizard(ctx, client, log)
	p := tea.NewProgram(w, tea.WithAltScreen())
	w.SetSend(p.Send)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if fw, ok := finalModel.(*VisitWizard); ok {
		fw.debounce.Stop()
		if fw.cancelled {
			return nil
		}
		if fw.err != nil {
			return fw.err
		}
	}

	return nil
}
