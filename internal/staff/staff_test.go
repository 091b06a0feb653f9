package staff

import (
	"reflect"
	"testing"

	"github.com/caredesk/caredesk/internal/flow"
)

func TestStateRoundTrip(t *testing.T) {
	in := &Staff{
		ID:             "42",
		Name:           "GARCIA^Linda",
		Email:          "l.garcia@hospital.org",
		Phone:          "+33 6 12 34 56 78",
		Roles:          []string{"Doctor"},
		Qualifications: []string{"MBBS", "MD"},
		Services:       []string{"Cardiology"},
		Timings: []TimeSlot{
			{Day: "Monday", Start: "09:00", End: "17:00", Duration: 30, Available: true},
		},
		FAQs:   []FAQ{{Question: "Hours?", Answer: "9 to 5"}},
		Shares: []ShareProcedure{{Name: "ECG", Share: 12.5}},
	}

	out := FromState(StateOf(in))

	// Password never round-trips through an edit session.
	if out.Password != "" {
		t.Errorf("password leaked into state: %q", out.Password)
	}
	in.Password = ""
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in  %+v\n out %+v", in, out)
	}
}

func TestFromState_DropsBlankListEntries(t *testing.T) {
	st := NewState()
	st.SetValue("qualifications", []string{"", "MBBS", ""})

	s := FromState(st)

	if !reflect.DeepEqual(s.Qualifications, []string{"MBBS"}) {
		t.Errorf("qualifications = %v", s.Qualifications)
	}
}

func TestNewState_Defaults(t *testing.T) {
	st := NewState()

	timings := st.Entries("timings")
	if len(timings) != len(Weekdays) {
		t.Fatalf("timings = %d entries, want %d", len(timings), len(Weekdays))
	}
	for i, e := range timings {
		if e["day"] != Weekdays[i] {
			t.Errorf("timings[%d].day = %v, want %s", i, e["day"], Weekdays[i])
		}
		if available, _ := e["available"].(bool); available {
			t.Errorf("timings[%d] available by default", i)
		}
	}
	if got := st.Strings("qualifications"); len(got) != 1 || got[0] != "" {
		t.Errorf("qualifications default = %v, want one blank entry", got)
	}
}

func TestIsAdmin(t *testing.T) {
	st := NewState()
	if IsAdmin(st) {
		t.Error("fresh state should not be admin")
	}
	st.SetValue("roles", []string{"Doctor", RoleAdmin})
	if !IsAdmin(st) {
		t.Error("admin role not detected")
	}
}

func TestFromState_CoercesEntryNumbers(t *testing.T) {
	st := NewState()
	st.AppendEntry("share_procedures", flow.Entry{"name": "ECG", "share": "15"})

	s := FromState(st)

	if len(s.Shares) != 1 || s.Shares[0].Share != 15 {
		t.Errorf("shares = %+v", s.Shares)
	}
}
