// Package flow implements the multi-step form workflow engine: a single
// mutable form state, an ordered step list with visibility predicates, and a
// controller that gates navigation on per-step validation.
package flow

// Entry is one record of a repeatable nested list (a time slot, an FAQ, a
// share procedure). Sub-fields are keyed by name.
type Entry map[string]any

// State is the single aggregate record holding all field values of one form
// session. It is owned by exactly one controller for the lifetime of the
// session; mutation is shallow-merge, last-write-wins.
type State struct {
	values  map[string]any
	version uint64
}

// NewState creates a form state populated with the given defaults.
func NewState(defaults map[string]any) *State {
	s := &State{values: make(map[string]any, len(defaults))}
	for k, v := range defaults {
		s.values[k] = v
	}
	return s
}

// Version increments on every mutation. The rendering layer uses it for
// change detection, which is why all list mutations are copy-on-write.
func (s *State) Version() uint64 { return s.version }

// Get returns the raw value for a field, or nil if unset.
func (s *State) Get(key string) any { return s.values[key] }

// Set shallow-merges the partial record into the state.
func (s *State) Set(partial map[string]any) {
	for k, v := range partial {
		s.values[k] = v
	}
	s.version++
}

// SetValue sets a single field.
func (s *State) SetValue(key string, v any) {
	s.values[key] = v
	s.version++
}

// String returns the field as a string, or "" if unset or not a string.
func (s *State) String(key string) string {
	v, _ := s.values[key].(string)
	return v
}

// Bool returns the field as a bool, defaulting to false.
func (s *State) Bool(key string) bool {
	v, _ := s.values[key].(bool)
	return v
}

// Number returns the field as a float64, defaulting to 0.
func (s *State) Number(key string) float64 {
	switch v := s.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Strings returns a string-list field. The returned slice is the stored one;
// callers must not mutate it in place.
func (s *State) Strings(key string) []string {
	v, _ := s.values[key].([]string)
	return v
}

// Entries returns a nested-record list field.
func (s *State) Entries(key string) []Entry {
	v, _ := s.values[key].([]Entry)
	return v
}

// AppendString appends a value to a string-list field, copy-on-write.
func (s *State) AppendString(key, value string) {
	old := s.Strings(key)
	next := make([]string, len(old)+1)
	copy(next, old)
	next[len(old)] = value
	s.SetValue(key, next)
}

// UpdateString replaces the i-th element of a string-list field. Out-of-range
// indices are ignored.
func (s *State) UpdateString(key string, i int, value string) {
	old := s.Strings(key)
	if i < 0 || i >= len(old) {
		return
	}
	next := make([]string, len(old))
	copy(next, old)
	next[i] = value
	s.SetValue(key, next)
}

// RemoveString deletes the i-th element of a string-list field, preserving
// order. Removing the last remaining entry of a required list is permitted
// here; emptiness is enforced by validation at step-transition time.
func (s *State) RemoveString(key string, i int) {
	old := s.Strings(key)
	if i < 0 || i >= len(old) {
		return
	}
	next := make([]string, 0, len(old)-1)
	next = append(next, old[:i]...)
	next = append(next, old[i+1:]...)
	s.SetValue(key, next)
}

// AppendEntry appends a record to a nested-record list field, copy-on-write.
func (s *State) AppendEntry(key string, e Entry) {
	old := s.Entries(key)
	next := make([]Entry, len(old)+1)
	copy(next, old)
	next[len(old)] = e
	s.SetValue(key, next)
}

// UpdateEntry sets one sub-field of the i-th record of a nested-record list.
// The record itself is copied so prior references stay unchanged.
func (s *State) UpdateEntry(key string, i int, field string, value any) {
	old := s.Entries(key)
	if i < 0 || i >= len(old) {
		return
	}
	next := make([]Entry, len(old))
	copy(next, old)
	rec := make(Entry, len(old[i])+1)
	for k, v := range old[i] {
		rec[k] = v
	}
	rec[field] = value
	next[i] = rec
	s.SetValue(key, next)
}

// RemoveEntry deletes the i-th record of a nested-record list, preserving
// order.
func (s *State) RemoveEntry(key string, i int) {
	old := s.Entries(key)
	if i < 0 || i >= len(old) {
		return
	}
	next := make([]Entry, 0, len(old)-1)
	next = append(next, old[:i]...)
	next = append(next, old[i+1:]...)
	s.SetValue(key, next)
}
