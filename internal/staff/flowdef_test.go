package staff

import (
	"strings"
	"testing"

	"github.com/caredesk/caredesk/internal/flow"
)

func TestBiography_EmailPattern(t *testing.T) {
	f := NewFlow()
	tests := []struct {
		email string
		valid bool
	}{
		{"doctor@hospital.org", true},
		{"bad", false},
		{"no@tld", false},
		{"a b@c.d", false},
	}

	for _, tc := range tests {
		st := NewState()
		st.Set(map[string]any{"name": "Dr A", "email": tc.email, "phone": "0612345678", "password": "secret1"})

		errs := f.ValidateStep(StepBiography, st)

		emailErrs := flow.ByField(errs, "email")
		if tc.valid && len(emailErrs) != 0 {
			t.Errorf("email %q: got %v, want none", tc.email, emailErrs)
		}
		if !tc.valid && len(emailErrs) == 0 {
			t.Errorf("email %q accepted, want error", tc.email)
		}
	}
}

func TestBiography_PasswordOnlyRequiredWhenCreating(t *testing.T) {
	f := NewFlow()

	creating := NewState()
	creating.Set(map[string]any{"name": "Dr A", "email": "a@b.co", "phone": "06"})
	if errs := flow.ByField(f.ValidateStep(StepBiography, creating), "password"); len(errs) == 0 {
		t.Error("creating without password should fail")
	}

	editing := NewState()
	editing.Set(map[string]any{"id": "42", "name": "Dr A", "email": "a@b.co", "phone": "06"})
	if errs := flow.ByField(f.ValidateStep(StepBiography, editing), "password"); len(errs) != 0 {
		t.Errorf("editing with empty password should pass, got %v", errs)
	}
}

func TestBiography_PasswordMinLength(t *testing.T) {
	f := NewFlow()
	st := NewState()
	st.Set(map[string]any{"name": "Dr A", "email": "a@b.co", "phone": "06", "password": "abc"})

	if errs := flow.ByField(f.ValidateStep(StepBiography, st), "password"); len(errs) != 1 {
		t.Errorf("5-char password: got %v, want one error", errs)
	}
}

func TestQualifications_EmptyListYieldsExactlyOneError(t *testing.T) {
	f := NewFlow()
	st := NewState()
	st.Set(map[string]any{"roles": []string{"Doctor"}})
	st.RemoveString("qualifications", 0)

	errs := f.ValidateStep(StepQualifications, st)

	if len(errs) != 1 {
		t.Fatalf("errors = %v, want exactly one", errs)
	}
	if errs[0].Field != "qualifications" {
		t.Errorf("error field = %q, want qualifications", errs[0].Field)
	}
}

func TestListSteps_SkippedEntirelyForAdmin(t *testing.T) {
	f := NewFlow()
	st := NewState()
	st.Set(map[string]any{"roles": []string{RoleAdmin}})
	st.SetValue("qualifications", []string{})
	st.SetValue("services", []string{})

	for _, step := range []string{StepQualifications, StepServices, StepTimings, StepFAQ, StepShares} {
		if errs := f.ValidateStep(step, st); len(errs) != 0 {
			t.Errorf("step %s: got %v, want skipped for admin", step, errs)
		}
	}
}

func TestAdmin_CollapsesVisibleSetToBiography(t *testing.T) {
	f := NewFlow()
	st := NewState()
	c := flow.NewController(f, st)

	c.Apply(map[string]any{"roles": []string{RoleAdmin}})
	visible := c.VisibleSteps()
	if len(visible) != 1 {
		t.Fatalf("visible = %d steps, want exactly 1", len(visible))
	}
	if visible[0].ID != StepBiography {
		t.Errorf("visible step = %q, want %q", visible[0].ID, StepBiography)
	}

	c.Apply(map[string]any{"roles": []string{"Doctor"}})
	if got := len(c.VisibleSteps()); got != len(f.Steps) {
		t.Errorf("visible = %d, want full set %d after deselect", got, len(f.Steps))
	}
}

func TestTimings_DurationRange(t *testing.T) {
	f := NewFlow()

	mk := func(duration float64) *flow.State {
		st := NewState()
		st.Set(map[string]any{"roles": []string{"Doctor"}})
		st.UpdateEntry("timings", 0, "available", true)
		st.UpdateEntry("timings", 0, "start", "09:00")
		st.UpdateEntry("timings", 0, "end", "17:00")
		st.UpdateEntry("timings", 0, "duration", duration)
		return st
	}

	if errs := f.ValidateStep(StepTimings, mk(130)); len(errs) != 1 {
		t.Errorf("duration 130: got %v, want one range error", errs)
	}
	if errs := f.ValidateStep(StepTimings, mk(30)); len(errs) != 0 {
		t.Errorf("duration 30: got %v, want none", errs)
	}
}

func TestTimings_AvailableDayNeedsStartAndEnd(t *testing.T) {
	f := NewFlow()
	st := NewState()
	st.UpdateEntry("timings", 2, "available", true)

	errs := f.ValidateStep(StepTimings, st)

	if len(flow.ByField(errs, "timing_2_start")) != 1 {
		t.Errorf("missing start not reported: %v", errs)
	}
	if len(flow.ByField(errs, "timing_2_end")) != 1 {
		t.Errorf("missing end not reported: %v", errs)
	}
}

func TestTimings_NoAvailableDay(t *testing.T) {
	f := NewFlow()
	st := NewState()

	errs := f.ValidateStep(StepTimings, st)

	if len(errs) != 1 || errs[0].Field != "timings" {
		t.Errorf("errors = %v, want single timings error", errs)
	}
}

func TestFAQ_RequiresBothSubFields(t *testing.T) {
	f := NewFlow()
	st := NewState()
	st.AppendEntry("faqs", flow.Entry{"question": "Opening hours?", "answer": ""})

	errs := f.ValidateStep(StepFAQ, st)

	if len(errs) != 1 || errs[0].Field != "faq_0_answer" {
		t.Errorf("errors = %v, want faq_0_answer", errs)
	}
}

func TestShares_ValueMustBePositive(t *testing.T) {
	f := NewFlow()
	st := NewState()
	st.AppendEntry("share_procedures", flow.Entry{"name": "X-Ray", "share": float64(0)})

	errs := f.ValidateStep(StepShares, st)

	if len(errs) != 1 || errs[0].Field != "share_0_value" {
		t.Errorf("errors = %v, want share_0_value", errs)
	}
}

func TestShares_CoercedStringValue(t *testing.T) {
	f := NewFlow()
	st := NewState()
	// Free-form input arrives as a string; invalid text coerces to 0 and is
	// caught by the positivity rule.
	st.AppendEntry("share_procedures", flow.Entry{"name": "X-Ray", "share": "abc"})

	if errs := f.ValidateStep(StepShares, st); len(errs) != 1 {
		t.Errorf("errors = %v, want one", errs)
	}

	st.UpdateEntry("share_procedures", 0, "share", "12.5")
	if errs := f.ValidateStep(StepShares, st); len(errs) != 0 {
		t.Errorf("errors = %v, want none", errs)
	}
}

func TestValidateAll_WholeFormEncounterOrder(t *testing.T) {
	f := NewFlow()
	st := NewState()
	st.Set(map[string]any{"name": "", "email": "bad", "phone": "", "roles": []string{}})
	st.SetValue("password", "secret1")

	errs := f.ValidateAll(st)

	if len(errs) < 4 {
		t.Fatalf("errors = %d, want >= 4: %v", len(errs), errs)
	}
	for _, field := range []string{"name", "email", "phone", "roles"} {
		if len(flow.ByField(errs, field)) == 0 {
			t.Errorf("no error for %s", field)
		}
	}
	// Encounter order: the name error surfaces first.
	if errs[0].Field != "name" || !strings.Contains(errs[0].Message, "Name") {
		t.Errorf("first error = %+v, want name", errs[0])
	}
}
