// Package visit defines the emergency-visit charting workflow: patient
// selection, triage, vital signs and disposition.
package visit

import (
	"fmt"
	"strings"

	"github.com/caredesk/caredesk/internal/flow"
)

// Patient is the lookup result of the debounced patient search.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MRN       string `json:"mrn"`
	BirthDate string `json:"birth_date"`
}

// Vitals is one set of recorded vital signs.
type Vitals struct {
	Pulse       float64 `json:"pulse"`
	Systolic    float64 `json:"systolic"`
	Diastolic   float64 `json:"diastolic"`
	Temperature float64 `json:"temperature"`
	RespRate    float64 `json:"resp_rate"`
	SpO2        float64 `json:"spo2"`
}

// Visit is the primary entity of the charting flow.
type Visit struct {
	ID             string `json:"id,omitempty"`
	PatientID      string `json:"patient_id"`
	ChiefComplaint string `json:"chief_complaint"`
	TriageLevel    int    `json:"triage_level"`
	Vitals         Vitals `json:"vitals"`
	Notes          string `json:"notes"`
	Disposition    string `json:"disposition"`
}

// Dispositions accepted by the disposition step.
var Dispositions = []string{"DISCHARGE", "ADMIT", "TRANSFER", "OBSERVATION", "LWBS"}

// ParseDisposition normalizes and validates a disposition value.
func ParseDisposition(s string) (string, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for _, d := range Dispositions {
		if d == up {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid disposition: %s (valid: %s)", s, strings.Join(Dispositions, ", "))
}

// NewState creates the default form state for an empty visit.
func NewState() *flow.State {
	return flow.NewState(map[string]any{
		"id":              "",
		"patient_id":      "",
		"patient_name":    "",
		"chief_complaint": "",
		"triage_level":    float64(3),
		"pulse":           float64(0),
		"systolic":        float64(0),
		"diastolic":       float64(0),
		"temperature":     float64(0),
		"resp_rate":       float64(0),
		"spo2":            float64(0),
		"notes":           "",
		"disposition":     "",
	})
}

// FromState builds the entity back out of the form state.
func FromState(st *flow.State) *Visit {
	return &Visit{
		ID:             st.String("id"),
		PatientID:      st.String("patient_id"),
		ChiefComplaint: st.String("chief_complaint"),
		TriageLevel:    int(st.Number("triage_level")),
		Vitals: Vitals{
			Pulse:       st.Number("pulse"),
			Systolic:    st.Number("systolic"),
			Diastolic:   st.Number("diastolic"),
			Temperature: st.Number("temperature"),
			RespRate:    st.Number("resp_rate"),
			SpO2:        st.Number("spo2"),
		},
		Notes:       st.String("notes"),
		Disposition: st.String("disposition"),
	}
}
