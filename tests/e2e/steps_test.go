package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"

	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/gateway"
	"github.com/caredesk/caredesk/internal/staff"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// fakeBackend is the in-process stand-in for the hospital API. It records
// what the save saga writes so scenarios can assert on order and content.
type fakeBackend struct {
	rejectStaff  bool
	rejectGrants bool

	receivedStaff  *staff.Staff
	receivedGrants []string
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/staff", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectStaff {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"message": "Email already in use"})
			return
		}
		var s staff.Staff
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.ID = "stf-001"
		f.receivedStaff = &s
		json.NewEncoder(w).Encode(&s)
	})

	mux.HandleFunc("PUT /api/staff/{id}/permissions", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectGrants {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not allowed to grant permissions"})
			return
		}
		var body struct {
			Permissions []string `json:"permissions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.receivedGrants = body.Permissions
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

// testContext holds state for a single scenario.
type testContext struct {
	ctrl    *flow.Controller
	backend *fakeBackend
	server  *httptest.Server
	client  *gateway.Client

	lastErr error
	outcome gateway.SaveOutcome
	saved   bool
}

func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &testContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.ctrl = flow.NewController(staff.NewFlow(), staff.NewState())
		tc.backend = &fakeBackend{}
		tc.server = httptest.NewServer(tc.backend.handler())

		client, err := gateway.New(tc.server.URL, "test-token", 5*time.Second, zerolog.Nop())
		if err != nil {
			return ctx, err
		}
		tc.client = client
		tc.lastErr = nil
		tc.saved = false
		return ctx, nil
	})

	sc.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	sc.Step(`^a blank onboarding session$`, tc.blankSession)
	sc.Step(`^I fill the biography with:$`, tc.fillBiography)
	sc.Step(`^I select the roles "([^"]*)"$`, tc.selectRoles)
	sc.Step(`^I advance$`, tc.advance)
	sc.Step(`^I go back$`, tc.goBack)
	sc.Step(`^I clear the field "([^"]*)"$`, tc.clearField)
	sc.Step(`^I add a FAQ entry with question "([^"]*)" and answer "([^"]*)"$`, tc.addFAQ)
	sc.Step(`^I validate the whole form$`, tc.validateAll)
	sc.Step(`^the current step should be "([^"]*)"$`, tc.currentStepShouldBe)
	sc.Step(`^the first error should be "([^"]*)"$`, tc.firstErrorShouldBe)
	sc.Step(`^the error list should have (\d+) entries$`, tc.errorListShouldHave)
	sc.Step(`^there should be (\d+) visible steps?$`, tc.visibleStepsShouldBe)
	sc.Step(`^there should be no errors$`, tc.noErrors)

	sc.Step(`^the backend accepts all writes$`, tc.backendAccepts)
	sc.Step(`^the backend rejects permission writes$`, tc.backendRejectsGrants)
	sc.Step(`^the backend rejects staff writes$`, tc.backendRejectsStaff)
	sc.Step(`^I complete a valid onboarding for "([^"]*)"$`, tc.completeOnboarding)
	sc.Step(`^I submit the form with grants "([^"]*)"$`, tc.submit)
	sc.Step(`^the save outcome should be "([^"]*)"$`, tc.outcomeShouldBe)
	sc.Step(`^the backend should have received the staff entity$`, tc.backendReceivedStaff)
	sc.Step(`^the backend should have received the grants$`, tc.backendReceivedGrants)
	sc.Step(`^the backend should not have received any grants$`, tc.backendReceivedNoGrants)
}

func (tc *testContext) blankSession() error {
	if tc.ctrl == nil {
		return fmt.Errorf("controller not initialised")
	}
	return nil
}

func (tc *testContext) fillBiography(table *godog.Table) error {
	values := map[string]any{}
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		if len(row.Cells) != 2 {
			return fmt.Errorf("row %d: want field and value", i)
		}
		values[row.Cells[0].Value] = row.Cells[1].Value
	}
	tc.ctrl.Apply(values)
	return nil
}

func (tc *testContext) selectRoles(roles string) error {
	var selected []string
	for _, r := range strings.Split(roles, ",") {
		selected = append(selected, strings.TrimSpace(r))
	}
	tc.ctrl.Apply(map[string]any{"roles": selected})
	return nil
}

func (tc *testContext) advance() error {
	tc.lastErr = tc.ctrl.Next()
	return nil
}

func (tc *testContext) goBack() error {
	tc.ctrl.Previous()
	return nil
}

func (tc *testContext) clearField(field string) error {
	tc.ctrl.Apply(map[string]any{field: []string{""}})
	return nil
}

func (tc *testContext) addFAQ(question, answer string) error {
	tc.ctrl.State().AppendEntry("faqs", flow.Entry{"question": question, "answer": answer})
	return nil
}

func (tc *testContext) validateAll() error {
	tc.ctrl.ValidateAll()
	return nil
}

func (tc *testContext) currentStepShouldBe(id string) error {
	if got := tc.ctrl.CurrentID(); got != id {
		return fmt.Errorf("current step is %q, want %q", got, id)
	}
	return nil
}

func (tc *testContext) firstErrorShouldBe(message string) error {
	errs := tc.ctrl.Errors()
	if len(errs) == 0 {
		return fmt.Errorf("no errors retained")
	}
	if errs[0].Message != message {
		return fmt.Errorf("first error is %q, want %q", errs[0].Message, message)
	}
	return nil
}

func (tc *testContext) errorListShouldHave(count int) error {
	if got := len(tc.ctrl.Errors()); got != count {
		return fmt.Errorf("error list has %d entries, want %d: %v", got, count, tc.ctrl.Errors())
	}
	return nil
}

func (tc *testContext) visibleStepsShouldBe(count int) error {
	if got := len(tc.ctrl.VisibleSteps()); got != count {
		return fmt.Errorf("%d visible steps, want %d", got, count)
	}
	return nil
}

func (tc *testContext) backendAccepts() error {
	return nil
}

func (tc *testContext) noErrors() error {
	if errs := tc.ctrl.Errors(); len(errs) != 0 {
		return fmt.Errorf("unexpected errors: %v", errs)
	}
	return nil
}

func (tc *testContext) backendRejectsGrants() error {
	tc.backend.rejectGrants = true
	return nil
}

func (tc *testContext) backendRejectsStaff() error {
	tc.backend.rejectStaff = true
	return nil
}

// completeOnboarding walks every step of the flow with valid values, the
// way the wizard would after a full session.
func (tc *testContext) completeOnboarding(name string) error {
	tc.ctrl.Apply(map[string]any{
		"name":     name,
		"email":    "asha@hospital.test",
		"phone":    "+91 99000 11223",
		"password": "secret1",
		"roles":    []string{"Doctor"},
	})
	if err := tc.ctrl.Next(); err != nil {
		return fmt.Errorf("biography: %w", err)
	}

	tc.ctrl.Apply(map[string]any{"qualifications": []string{"MBBS"}})
	if err := tc.ctrl.Next(); err != nil {
		return fmt.Errorf("qualifications: %w", err)
	}

	tc.ctrl.Apply(map[string]any{"services": []string{"General Consultation"}})
	if err := tc.ctrl.Next(); err != nil {
		return fmt.Errorf("services: %w", err)
	}

	timings := tc.ctrl.State().Entries("timings")
	updated := make([]flow.Entry, len(timings))
	for i, e := range timings {
		updated[i] = flow.Entry{
			"day":       e["day"],
			"available": i == 0,
			"start":     "09:00",
			"end":       "17:00",
			"duration":  float64(30),
		}
	}
	tc.ctrl.Apply(map[string]any{"timings": updated})
	if err := tc.ctrl.Next(); err != nil {
		return fmt.Errorf("timings: %w", err)
	}

	// FAQ and shares may stay empty; advance through them.
	if err := tc.ctrl.Next(); err != nil {
		return fmt.Errorf("faq: %w", err)
	}
	if err := tc.ctrl.Next(); err != nil {
		return fmt.Errorf("shares: %w", err)
	}

	if tc.ctrl.CurrentID() != staff.StepReview {
		return fmt.Errorf("expected to land on review, at %q", tc.ctrl.CurrentID())
	}
	if errs := tc.ctrl.ValidateAll(); len(errs) != 0 {
		return fmt.Errorf("whole-form validation failed: %v", errs)
	}
	return nil
}

func (tc *testContext) submit(grants string) error {
	var keys []string
	for _, g := range strings.Split(grants, ",") {
		keys = append(keys, strings.TrimSpace(g))
	}

	member := staff.FromState(tc.ctrl.State())
	_, outcome, _ := tc.client.SaveStaff(context.Background(), member, keys)
	tc.outcome = outcome
	tc.saved = true
	return nil
}

func (tc *testContext) outcomeShouldBe(expected string) error {
	if !tc.saved {
		return fmt.Errorf("nothing was submitted")
	}

	var want gateway.SaveOutcome
	switch expected {
	case "saved":
		want = gateway.Saved
	case "saved-permissions-failed":
		want = gateway.SavedPermissionsFailed
	case "save-failed":
		want = gateway.SaveFailed
	default:
		return fmt.Errorf("unknown outcome %q", expected)
	}

	if tc.outcome != want {
		return fmt.Errorf("outcome is %q, want %q", tc.outcome, want)
	}
	return nil
}

func (tc *testContext) backendReceivedStaff() error {
	if tc.backend.receivedStaff == nil {
		return fmt.Errorf("backend never received the staff entity")
	}
	return nil
}

func (tc *testContext) backendReceivedGrants() error {
	if tc.backend.receivedGrants == nil {
		return fmt.Errorf("backend never received the grants")
	}
	return nil
}

func (tc *testContext) backendReceivedNoGrants() error {
	if tc.backend.receivedGrants != nil {
		return fmt.Errorf("backend received grants %v despite the failed entity write", tc.backend.receivedGrants)
	}
	return nil
}
