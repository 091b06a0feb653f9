// Package staff defines the staff-onboarding workflow: the staff entity, the
// step list with its role-driven visibility, and the per-step validation.
package staff

import (
	"github.com/caredesk/caredesk/internal/flow"
)

// RoleAdmin is the privileged role. Selecting it collapses the visible step
// set to the biography step alone and suppresses the other steps' validation.
const RoleAdmin = "Admin"

// TimeSlot is one weekday row of the availability schedule.
type TimeSlot struct {
	Day       string  `json:"day" yaml:"day"`
	Start     string  `json:"start" yaml:"start"`
	End       string  `json:"end" yaml:"end"`
	Duration  float64 `json:"duration" yaml:"duration"`
	Available bool    `json:"available" yaml:"available"`
}

// FAQ is one question/answer pair shown on the staff profile.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// ShareProcedure is a revenue-share line: procedure name plus the share
// value owed to the staff member.
type ShareProcedure struct {
	Name  string  `json:"name" yaml:"name"`
	Share float64 `json:"share" yaml:"share"`
}

// Staff is the primary entity of the onboarding flow.
type Staff struct {
	ID             string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string           `json:"name" yaml:"name"`
	Email          string           `json:"email" yaml:"email"`
	Phone          string           `json:"phone" yaml:"phone"`
	Password       string           `json:"password,omitempty" yaml:"-"`
	Roles          []string         `json:"roles" yaml:"roles"`
	Qualifications []string         `json:"qualifications" yaml:"qualifications"`
	Services       []string         `json:"services" yaml:"services"`
	Timings        []TimeSlot       `json:"timings" yaml:"timings"`
	FAQs           []FAQ            `json:"faqs" yaml:"faqs"`
	Shares         []ShareProcedure `json:"share_procedures" yaml:"share_procedures"`
}

// Weekdays in schedule order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// NewState creates the default form state for a fresh onboarding session:
// one blank entry per required repeatable list and a full week of
// unavailable slots.
func NewState() *flow.State {
	timings := make([]flow.Entry, len(Weekdays))
	for i, day := range Weekdays {
		timings[i] = flow.Entry{
			"day":       day,
			"start":     "",
			"end":       "",
			"duration":  float64(30),
			"available": false,
		}
	}
	return flow.NewState(map[string]any{
		"id":               "",
		"name":             "",
		"email":            "",
		"phone":            "",
		"password":         "",
		"roles":            []string{},
		"qualifications":   []string{""},
		"services":         []string{""},
		"timings":          timings,
		"faqs":             []flow.Entry{},
		"share_procedures": []flow.Entry{},
	})
}

// StateOf populates a form state from an existing entity for editing. The
// password stays empty: empty means "leave unchanged".
func StateOf(s *Staff) *flow.State {
	st := NewState()
	timings := make([]flow.Entry, len(s.Timings))
	for i, t := range s.Timings {
		timings[i] = flow.Entry{
			"day":       t.Day,
			"start":     t.Start,
			"end":       t.End,
			"duration":  t.Duration,
			"available": t.Available,
		}
	}
	faqs := make([]flow.Entry, len(s.FAQs))
	for i, f := range s.FAQs {
		faqs[i] = flow.Entry{"question": f.Question, "answer": f.Answer}
	}
	shares := make([]flow.Entry, len(s.Shares))
	for i, sp := range s.Shares {
		shares[i] = flow.Entry{"name": sp.Name, "share": sp.Share}
	}
	st.Set(map[string]any{
		"id":             s.ID,
		"name":           s.Name,
		"email":          s.Email,
		"phone":          s.Phone,
		"roles":          s.Roles,
		"qualifications": s.Qualifications,
		"services":       s.Services,
	})
	if len(timings) > 0 {
		st.SetValue("timings", timings)
	}
	st.SetValue("faqs", faqs)
	st.SetValue("share_procedures", shares)
	return st
}

// FromState builds the entity back out of the form state for persistence.
func FromState(st *flow.State) *Staff {
	s := &Staff{
		ID:             st.String("id"),
		Name:           st.String("name"),
		Email:          st.String("email"),
		Phone:          st.String("phone"),
		Password:       st.String("password"),
		Roles:          st.Strings("roles"),
		Qualifications: compact(st.Strings("qualifications")),
		Services:       compact(st.Strings("services")),
	}
	for _, e := range st.Entries("timings") {
		day, _ := e["day"].(string)
		start, _ := e["start"].(string)
		end, _ := e["end"].(string)
		available, _ := e["available"].(bool)
		s.Timings = append(s.Timings, TimeSlot{
			Day:       day,
			Start:     start,
			End:       end,
			Duration:  entryNumber(e, "duration"),
			Available: available,
		})
	}
	for _, e := range st.Entries("faqs") {
		q, _ := e["question"].(string)
		a, _ := e["answer"].(string)
		s.FAQs = append(s.FAQs, FAQ{Question: q, Answer: a})
	}
	for _, e := range st.Entries("share_procedures") {
		name, _ := e["name"].(string)
		s.Shares = append(s.Shares, ShareProcedure{Name: name, Share: entryNumber(e, "share")})
	}
	return s
}

// IsAdmin reports whether the privileged role is currently selected.
func IsAdmin(st *flow.State) bool {
	for _, r := range st.Strings("roles") {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
