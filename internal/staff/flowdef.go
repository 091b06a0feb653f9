package staff

import (
	"fmt"
	"strings"

	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/flow/rules"
)

// Step ids of the onboarding flow. Role selection lives on the biography
// step, which is why it is the one step that survives the privileged-role
// collapse.
const (
	StepBiography      = "biography-data"
	StepQualifications = "qualifications"
	StepServices       = "services"
	StepTimings        = "timings"
	StepFAQ            = "faq"
	StepShares         = "share-procedures"
	StepReview         = "review"
)

// NewFlow builds the static step list of the staff onboarding workflow.
// Every step beyond biography is suppressed while the privileged role is
// selected, so an admin session is a single-step form.
func NewFlow() *flow.Flow {
	notAdmin := func(st *flow.State) bool { return !IsAdmin(st) }

	return &flow.Flow{
		Name: "staff-onboarding",
		Steps: []flow.Step{
			{
				ID:            StepBiography,
				Label:         "Biography",
				Validate:      validateBiography,
				FieldPrefixes: []string{"name", "email", "phone", "password", "roles", "permissions"},
			},
			{
				ID:            StepQualifications,
				Label:         "Qualifications",
				Visible:       notAdmin,
				Validate:      listValidator("qualifications", "qualification"),
				FieldPrefixes: []string{"qualifications"},
			},
			{
				ID:            StepServices,
				Label:         "Services",
				Visible:       notAdmin,
				Validate:      listValidator("services", "service"),
				FieldPrefixes: []string{"services"},
			},
			{
				ID:            StepTimings,
				Label:         "Timings",
				Visible:       notAdmin,
				Validate:      validateTimings,
				FieldPrefixes: []string{"timing", "timings"},
			},
			{
				ID:            StepFAQ,
				Label:         "FAQ",
				Visible:       notAdmin,
				Validate:      validateFAQs,
				FieldPrefixes: []string{"faq"},
			},
			{
				ID:            StepShares,
				Label:         "Share Procedures",
				Visible:       notAdmin,
				Validate:      validateShares,
				FieldPrefixes: []string{"share"},
			},
			{
				ID:      StepReview,
				Label:   "Review",
				Visible: notAdmin,
			},
		},
	}
}

func validateBiography(st *flow.State) []flow.FieldError {
	var errs []flow.FieldError
	errs = rules.Required(errs, "name", "Name", st.String("name"))
	errs = rules.Required(errs, "email", "Email", st.String("email"))
	errs = rules.Email(errs, "email", st.String("email"))
	errs = rules.Required(errs, "phone", "Phone", st.String("phone"))
	errs = rules.Phone(errs, "phone", st.String("phone"))
	// Password is mandatory only when creating; on edit an empty password
	// means "leave unchanged".
	if st.String("id") == "" {
		errs = rules.Required(errs, "password", "Password", st.String("password"))
	}
	errs = rules.MinLen(errs, "password", "Password", st.String("password"), 6)
	errs = rules.AtLeastOneSelected(errs, "roles", "role", st.Strings("roles"))
	return errs
}

// listValidator builds the validator for a required repeatable string list.
// The whole check is skipped while the privileged role is selected, matching
// the collapsed step set.
func listValidator(field, label string) func(*flow.State) []flow.FieldError {
	return func(st *flow.State) []flow.FieldError {
		if IsAdmin(st) {
			return nil
		}
		var errs []flow.FieldError
		errs = rules.NonBlankList(errs, field, label, st.Strings(field))
		return errs
	}
}

func validateTimings(st *flow.State) []flow.FieldError {
	if IsAdmin(st) {
		return nil
	}
	var errs []flow.FieldError
	timings := st.Entries("timings")

	anyAvailable := false
	for _, e := range timings {
		if available, _ := e["available"].(bool); available {
			anyAvailable = true
			break
		}
	}
	if !anyAvailable {
		return append(errs, flow.FieldError{Field: "timings", Message: "Mark at least one day as available"})
	}

	for i, e := range timings {
		available, _ := e["available"].(bool)
		if !available {
			continue
		}
		day, _ := e["day"].(string)
		start, _ := e["start"].(string)
		end, _ := e["end"].(string)
		if strings.TrimSpace(start) == "" {
			errs = append(errs, flow.FieldError{
				Field:   fmt.Sprintf("timing_%d_start", i),
				Message: day + " needs a start time",
			})
		}
		if strings.TrimSpace(end) == "" {
			errs = append(errs, flow.FieldError{
				Field:   fmt.Sprintf("timing_%d_end", i),
				Message: day + " needs an end time",
			})
		}
		errs = rules.Range(errs, fmt.Sprintf("timing_%d_duration", i), day+" slot duration", entryNumber(e, "duration"), 5, 120)
	}
	return errs
}

func validateFAQs(st *flow.State) []flow.FieldError {
	if IsAdmin(st) {
		return nil
	}
	var errs []flow.FieldError
	for i, e := range st.Entries("faqs") {
		q, _ := e["question"].(string)
		a, _ := e["answer"].(string)
		errs = rules.Required(errs, fmt.Sprintf("faq_%d_question", i), fmt.Sprintf("FAQ %d question", i+1), q)
		errs = rules.Required(errs, fmt.Sprintf("faq_%d_answer", i), fmt.Sprintf("FAQ %d answer", i+1), a)
	}
	return errs
}

func validateShares(st *flow.State) []flow.FieldError {
	if IsAdmin(st) {
		return nil
	}
	var errs []flow.FieldError
	for i, e := range st.Entries("share_procedures") {
		name, _ := e["name"].(string)
		errs = rules.Required(errs, fmt.Sprintf("share_%d_name", i), fmt.Sprintf("Procedure %d name", i+1), name)
		errs = rules.Positive(errs, fmt.Sprintf("share_%d_value", i), fmt.Sprintf("Procedure %d share", i+1), entryNumber(e, "share"))
	}
	return errs
}

func entryNumber(e flow.Entry, key string) float64 {
	switch v := e[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		return rules.Number(v)
	}
	return 0
}
