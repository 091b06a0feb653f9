// Package rules provides the pure field-level validation rules shared by the
// form flows. Each helper appends to an error list so step validators read
// as a flat sequence of checks in encounter order.
package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/caredesk/caredesk/internal/flow"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-() ]+$`)
)

// Required checks that a string field is non-empty after trimming.
func Required(errs []flow.FieldError, field, label, value string) []flow.FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, flow.FieldError{Field: field, Message: label + " is required"})
	}
	return errs
}

// Email checks the local@domain.tld shape. Emptiness is Required's job.
func Email(errs []flow.FieldError, field, value string) []flow.FieldError {
	if strings.TrimSpace(value) == "" {
		return errs
	}
	if !emailPattern.MatchString(value) {
		errs = append(errs, flow.FieldError{Field: field, Message: "Enter a valid email address"})
	}
	return errs
}

// Phone checks the allowed character class: digits, spaces, +, - and
// parentheses.
func Phone(errs []flow.FieldError, field, value string) []flow.FieldError {
	if strings.TrimSpace(value) == "" {
		return errs
	}
	if !phonePattern.MatchString(value) {
		errs = append(errs, flow.FieldError{Field: field, Message: "Phone may only contain digits, spaces, +, - and parentheses"})
	}
	return errs
}

// MinLen checks a minimum length on a non-empty value.
func MinLen(errs []flow.FieldError, field, label, value string, min int) []flow.FieldError {
	if value != "" && len(value) < min {
		errs = append(errs, flow.FieldError{Field: field, Message: fmt.Sprintf("%s must be at least %d characters", label, min)})
	}
	return errs
}

// AtLeastOneSelected checks that a selection set is non-empty.
func AtLeastOneSelected(errs []flow.FieldError, field, label string, values []string) []flow.FieldError {
	if len(values) == 0 {
		errs = append(errs, flow.FieldError{Field: field, Message: "Select at least one " + label})
	}
	return errs
}

// NonBlankList checks a repeatable string list for at least one non-blank
// entry. The store permits emptying the list; this is where it gets caught.
func NonBlankList(errs []flow.FieldError, field, label string, values []string) []flow.FieldError {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return errs
		}
	}
	errs = append(errs, flow.FieldError{Field: field, Message: "Add at least one " + label})
	return errs
}

// Range checks that a numeric value falls inside [min, max] inclusive.
func Range(errs []flow.FieldError, field, label string, value, min, max float64) []flow.FieldError {
	if value < min || value > max {
		errs = append(errs, flow.FieldError{Field: field, Message: fmt.Sprintf("%s must be between %g and %g", label, min, max)})
	}
	return errs
}

// Positive checks that a numeric value is strictly greater than zero. Invalid
// input was already coerced to 0 by Number, so it fails here too.
func Positive(errs []flow.FieldError, field, label string, value float64) []flow.FieldError {
	if value <= 0 {
		errs = append(errs, flow.FieldError{Field: field, Message: label + " must be greater than zero"})
	}
	return errs
}

// Number parses free-form numeric input. Invalid input coerces to 0 rather
// than being rejected at the input layer; validation then catches the zero.
func Number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Int parses free-form integer input with the same coercion policy as Number.
func Int(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
