package flow

import "fmt"

// FieldError describes a single failed validation rule for one field.
// Errors are ephemeral: recomputed on every validation pass, never stored
// beyond the pass that produced them.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationFailed carries the full error list of a refused step transition.
// Error() returns only the first message in encounter order; callers keep
// the whole list for per-field display.
type ValidationFailed struct {
	Errors []FieldError
}

func (e *ValidationFailed) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0].Message
}

// ByField returns the messages of all errors for the given field.
func ByField(errs []FieldError, field string) []string {
	var out []string
	for _, e := range errs {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}
