package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caredesk/caredesk/internal/staff"
)

func TestSaveDraft_AndLoadBack(t *testing.T) {
	member := &staff.Staff{
		Name:           "Dr. Asha Rao",
		Email:          "asha@hospital.test",
		Phone:          "+91 99000 11223",
		Password:       "secret-password",
		Roles:          []string{"Doctor"},
		Qualifications: []string{"MBBS", "MD"},
		Services:       []string{"General Consultation"},
		Timings: []staff.TimeSlot{
			{Day: "Monday", Start: "09:00", End: "17:00", Duration: 30, Available: true},
		},
		FAQs:   []staff.FAQ{{Question: "Do you take walk-ins?", Answer: "Mornings only."}},
		Shares: []staff.ShareProcedure{{Name: "Suture removal", Share: 15}},
	}

	path := filepath.Join(t.TempDir(), "draft.yaml")
	if err := SaveDraft(staff.StateOf(member), []string{"appointments.read"}, path); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); strings.Contains(got, "secret-password") {
		t.Error("draft file contains the password")
	}

	state, grants, err := LoadDraft(path)
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}

	loaded := staff.FromState(state)
	if loaded.Name != member.Name {
		t.Errorf("Name = %q", loaded.Name)
	}
	if loaded.Password != "" {
		t.Errorf("Password survived the round trip: %q", loaded.Password)
	}
	if len(loaded.Qualifications) != 2 {
		t.Errorf("Qualifications = %v", loaded.Qualifications)
	}
	if len(loaded.FAQs) != 1 || loaded.FAQs[0].Question != "Do you take walk-ins?" {
		t.Errorf("FAQs = %v", loaded.FAQs)
	}
	if len(loaded.Shares) != 1 || loaded.Shares[0].Share != 15 {
		t.Errorf("Shares = %v", loaded.Shares)
	}
	if len(grants) != 1 || grants[0] != "appointments.read" {
		t.Errorf("grants = %v", grants)
	}
}

func TestLoadDraft_NonExistentFile(t *testing.T) {
	if _, _, err := LoadDraft(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing draft")
	}
}

func TestLoadDraft_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":: not yaml ::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadDraft(path); err == nil {
		t.Error("expected error for malformed draft")
	}
}
