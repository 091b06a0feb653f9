package flow

import "strings"

// Step is one page of a multi-page form, identified by a stable string id.
type Step struct {
	ID    string
	Label string

	// Visible decides whether the step is part of the current step set.
	// A nil predicate means always visible.
	Visible func(*State) bool

	// Validate returns the field errors of this step in encounter order.
	// A nil validator means the step never blocks navigation.
	Validate func(*State) []FieldError

	// FieldPrefixes names the error-field prefixes this step owns, used to
	// route a whole-form failure back to the step that can fix it.
	FieldPrefixes []string
}

// Flow is a static ordered step list describing one form workflow.
type Flow struct {
	Name  string
	Steps []Step
}

// VisibleSteps filters the static step list by the visibility predicates.
// The result is always non-empty: when every predicate refuses (which no
// well-formed flow should produce), the first step is kept as a fallback so
// the controller invariant holds.
func (f *Flow) VisibleSteps(s *State) []Step {
	var out []Step
	for _, st := range f.Steps {
		if st.Visible == nil || st.Visible(s) {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		out = f.Steps[:1]
	}
	return out
}

// StepByID returns the step with the given id.
func (f *Flow) StepByID(id string) (Step, bool) {
	for _, st := range f.Steps {
		if st.ID == id {
			return st, true
		}
	}
	return Step{}, false
}

// StepForField returns the step owning the given error field, matched by
// field-name prefix. Fields with no declared prefix fall through to the
// first step, which owns the identity fields in every flow here.
func (f *Flow) StepForField(field string) (Step, bool) {
	for _, st := range f.Steps {
		for _, p := range st.FieldPrefixes {
			if strings.HasPrefix(field, p) {
				return st, true
			}
		}
	}
	return Step{}, false
}

// ValidateStep runs a single step's validator against the state.
func (f *Flow) ValidateStep(id string, s *State) []FieldError {
	st, ok := f.StepByID(id)
	if !ok || st.Validate == nil {
		return nil
	}
	return st.Validate(s)
}

// ValidateAll runs every visible step's validator in step order and returns
// the concatenated error list, preserving encounter order.
func (f *Flow) ValidateAll(s *State) []FieldError {
	var out []FieldError
	for _, st := range f.VisibleSteps(s) {
		if st.Validate == nil {
			continue
		}
		out = append(out, st.Validate(s)...)
	}
	return out
}
