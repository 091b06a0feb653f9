package rules

import (
	"testing"

	"github.com/caredesk/caredesk/internal/flow"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"doctor@hospital.org", true},
		{"a@b.co", true},
		{"first.last@sub.domain.io", true},
		{"bad", false},
		{"no@tld", false},
		{"spaces in@domain.tld", false},
		{"@domain.tld", false},
		{"user@.tld", false},
	}

	for _, tc := range tests {
		errs := Email(nil, "email", tc.value)
		if tc.valid && len(errs) != 0 {
			t.Errorf("Email(%q) = %v, want valid", tc.value, errs)
		}
		if !tc.valid && len(errs) == 0 {
			t.Errorf("Email(%q) accepted, want error", tc.value)
		}
	}
}

func TestEmail_EmptySkipped(t *testing.T) {
	if errs := Email(nil, "email", "  "); len(errs) != 0 {
		t.Errorf("empty email should be Required's problem, got %v", errs)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"+33 (0)6 12 34 56 78", true},
		{"0612345678", true},
		{"06-12-34-56-78", true},
		{"call me", false},
		{"06.12.34", false},
	}

	for _, tc := range tests {
		errs := Phone(nil, "phone", tc.value)
		if tc.valid && len(errs) != 0 {
			t.Errorf("Phone(%q) = %v, want valid", tc.value, errs)
		}
		if !tc.valid && len(errs) == 0 {
			t.Errorf("Phone(%q) accepted, want error", tc.value)
		}
	}
}

func TestRequired_TrimsBeforeChecking(t *testing.T) {
	if errs := Required(nil, "name", "Name", "   "); len(errs) != 1 {
		t.Errorf("whitespace-only should fail, got %v", errs)
	}
	if errs := Required(nil, "name", "Name", " x "); len(errs) != 0 {
		t.Errorf("non-blank should pass, got %v", errs)
	}
}

func TestMinLen_EmptySkipped(t *testing.T) {
	if errs := MinLen(nil, "password", "Password", "", 6); len(errs) != 0 {
		t.Errorf("empty value is not MinLen's problem, got %v", errs)
	}
	if errs := MinLen(nil, "password", "Password", "abc", 6); len(errs) != 1 {
		t.Errorf("short value should fail, got %v", errs)
	}
}

func TestNonBlankList(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		valid  bool
	}{
		{"one entry", []string{"MBBS"}, true},
		{"blank then filled", []string{"", "MD"}, true},
		{"empty list", nil, false},
		{"all blank", []string{"", "   "}, false},
	}

	for _, tc := range tests {
		errs := NonBlankList(nil, "qualifications", "qualification", tc.values)
		if tc.valid && len(errs) != 0 {
			t.Errorf("%s: got %v, want valid", tc.name, errs)
		}
		if !tc.valid && len(errs) != 1 {
			t.Errorf("%s: got %v, want exactly one error", tc.name, errs)
		}
	}
}

func TestRange(t *testing.T) {
	if errs := Range(nil, "d", "Duration", 130, 5, 120); len(errs) != 1 {
		t.Errorf("130 outside [5,120] should fail, got %v", errs)
	}
	if errs := Range(nil, "d", "Duration", 30, 5, 120); len(errs) != 0 {
		t.Errorf("30 inside [5,120] should pass, got %v", errs)
	}
	// Bounds are inclusive.
	var errs []flow.FieldError
	errs = Range(errs, "d", "Duration", 5, 5, 120)
	errs = Range(errs, "d", "Duration", 120, 5, 120)
	if len(errs) != 0 {
		t.Errorf("bounds should pass, got %v", errs)
	}
}

func TestNumber_CoercesInvalidToZero(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 30 ", 30},
		{"abc", 0},
		{"", 0},
		{"12,5", 0},
	}

	for _, tc := range tests {
		if got := Number(tc.in); got != tc.want {
			t.Errorf("Number(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPositive_CatchesCoercedZero(t *testing.T) {
	// Invalid numeric input becomes 0 at the parse layer; the rule layer is
	// where it turns into a user-visible error.
	if errs := Positive(nil, "share_0_value", "Share", Number("oops")); len(errs) != 1 {
		t.Errorf("coerced zero should fail, got %v", errs)
	}
	if errs := Positive(nil, "share_0_value", "Share", 12); len(errs) != 0 {
		t.Errorf("positive should pass, got %v", errs)
	}
}
