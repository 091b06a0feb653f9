package flow

// Controller owns the current-step pointer of one form session and gates
// forward navigation on the validation engine. Backward navigation never
// validates.
type Controller struct {
	flow    *Flow
	state   *State
	current string

	// errs retains the full error list of the last refused transition for
	// per-field inline display. Cleared on the next successful transition.
	errs []FieldError
}

// NewController creates a controller positioned on the first visible step.
func NewController(f *Flow, s *State) *Controller {
	c := &Controller{flow: f, state: s}
	c.current = f.VisibleSteps(s)[0].ID
	return c
}

// State returns the form state owned by this session.
func (c *Controller) State() *State { return c.state }

// Flow returns the static flow definition.
func (c *Controller) Flow() *Flow { return c.flow }

// CurrentID returns the id of the active step.
func (c *Controller) CurrentID() string { return c.current }

// Current returns the active step.
func (c *Controller) Current() Step {
	st, _ := c.flow.StepByID(c.current)
	return st
}

// Errors returns the retained error list of the last refused transition.
func (c *Controller) Errors() []FieldError { return c.errs }

// VisibleSteps returns the step set derived from the current form state.
func (c *Controller) VisibleSteps() []Step { return c.flow.VisibleSteps(c.state) }

// index returns the position of the current step within the visible set,
// or 0 if it fell out of the set (fixed up by Sync).
func (c *Controller) index() int {
	for i, st := range c.VisibleSteps() {
		if st.ID == c.current {
			return i
		}
	}
	return 0
}

// AtFirst reports whether the controller is on the first visible step.
func (c *Controller) AtFirst() bool { return c.index() == 0 }

// AtLast reports whether the controller is on the last visible step.
func (c *Controller) AtLast() bool {
	return c.index() == len(c.VisibleSteps())-1
}

// Apply shallow-merges the partial record into the state and re-syncs the
// step pointer, so a role toggle that collapses the step set snaps the
// pointer back in the same call.
func (c *Controller) Apply(partial map[string]any) {
	c.state.Set(partial)
	c.Sync()
}

// Sync restores the invariant that the current step id is a member of the
// visible set. When the active step disappeared (privileged-role collapse),
// the pointer snaps to the first visible step, even mid-edit.
func (c *Controller) Sync() {
	visible := c.VisibleSteps()
	for _, st := range visible {
		if st.ID == c.current {
			return
		}
	}
	c.current = visible[0].ID
}

// Next validates the current step. On failure it refuses navigation and
// returns a *ValidationFailed whose Error() is the first error's message;
// the full list stays available via Errors. On success the pointer advances
// to the next visible step (or stays on the last one).
func (c *Controller) Next() error {
	errs := c.flow.ValidateStep(c.current, c.state)
	if len(errs) > 0 {
		c.errs = errs
		return &ValidationFailed{Errors: errs}
	}
	c.errs = nil
	visible := c.VisibleSteps()
	if i := c.index(); i+1 < len(visible) {
		c.current = visible[i+1].ID
	}
	return nil
}

// Previous moves back one visible step without validating. Calling it from
// the first step is a no-op.
func (c *Controller) Previous() {
	visible := c.VisibleSteps()
	if i := c.index(); i > 0 {
		c.current = visible[i-1].ID
	}
}

// GoTo jumps to the given step if it is currently visible.
func (c *Controller) GoTo(id string) bool {
	for _, st := range c.VisibleSteps() {
		if st.ID == id {
			c.current = id
			return true
		}
	}
	return false
}

// GoToField deep-links to the step owning the given error field, used to
// land the user on the first invalid step after a whole-form submit failure.
func (c *Controller) GoToField(field string) bool {
	st, ok := c.flow.StepForField(field)
	if !ok {
		return false
	}
	return c.GoTo(st.ID)
}

// ValidateAll validates every visible step and retains the error list. On
// failure the controller is repositioned on the step owning the first error.
func (c *Controller) ValidateAll() []FieldError {
	errs := c.flow.ValidateAll(c.state)
	c.errs = errs
	if len(errs) > 0 {
		c.GoToField(errs[0].Field)
	}
	return errs
}
