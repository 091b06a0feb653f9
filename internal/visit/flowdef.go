package visit

import (
	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/flow/rules"
)

// Step ids of the charting flow.
const (
	StepPatient     = "patient"
	StepTriage      = "triage"
	StepVitals      = "vitals"
	StepDisposition = "disposition"
)

// NewFlow builds the static step list of the emergency-visit charting
// workflow. All steps are always visible; there is no privileged-role
// collapse on this flow.
func NewFlow() *flow.Flow {
	return &flow.Flow{
		Name: "visit-charting",
		Steps: []flow.Step{
			{
				ID:            StepPatient,
				Label:         "Patient",
				Validate:      validatePatient,
				FieldPrefixes: []string{"patient"},
			},
			{
				ID:            StepTriage,
				Label:         "Triage",
				Validate:      validateTriage,
				FieldPrefixes: []string{"triage", "chief_complaint"},
			},
			{
				ID:            StepVitals,
				Label:         "Vitals",
				Validate:      validateVitals,
				FieldPrefixes: []string{"pulse", "systolic", "diastolic", "temperature", "resp_rate", "spo2"},
			},
			{
				ID:            StepDisposition,
				Label:         "Disposition",
				Validate:      validateDisposition,
				FieldPrefixes: []string{"disposition", "notes"},
			},
		},
	}
}

func validatePatient(st *flow.State) []flow.FieldError {
	var errs []flow.FieldError
	errs = rules.Required(errs, "patient_id", "Patient", st.String("patient_id"))
	return errs
}

func validateTriage(st *flow.State) []flow.FieldError {
	var errs []flow.FieldError
	errs = rules.Required(errs, "chief_complaint", "Chief complaint", st.String("chief_complaint"))
	errs = rules.Range(errs, "triage_level", "Triage level", st.Number("triage_level"), 1, 5)
	return errs
}

func validateVitals(st *flow.State) []flow.FieldError {
	var errs []flow.FieldError
	errs = rules.Range(errs, "pulse", "Pulse", st.Number("pulse"), 20, 300)
	errs = rules.Range(errs, "systolic", "Systolic BP", st.Number("systolic"), 40, 300)
	errs = rules.Range(errs, "temperature", "Temperature", st.Number("temperature"), 30.0, 45.0)
	errs = rules.Range(errs, "resp_rate", "Respiratory rate", st.Number("resp_rate"), 4, 80)
	errs = rules.Range(errs, "spo2", "SpO2", st.Number("spo2"), 0, 100)
	return errs
}

func validateDisposition(st *flow.State) []flow.FieldError {
	var errs []flow.FieldError
	errs = rules.Required(errs, "disposition", "Disposition", st.String("disposition"))
	if v := st.String("disposition"); v != "" {
		if _, err := ParseDisposition(v); err != nil {
			errs = append(errs, flow.FieldError{Field: "disposition", Message: err.Error()})
		}
	}
	return errs
}
