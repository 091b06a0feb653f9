package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caredesk/caredesk/internal/flow"
	"github.com/caredesk/caredesk/internal/staff"
)

// Draft is the YAML shape of a suspended onboarding session. The password
// is never written out; resuming a draft always re-enters it.
type Draft struct {
	Staff  staff.Staff `yaml:"staff"`
	Grants []string    `yaml:"grants,omitempty"`
}

// SaveDraft writes the current form state to a YAML draft file.
func SaveDraft(st *flow.State, grants []string, path string) error {
	member := staff.FromState(st)
	member.Password = ""

	draft := Draft{
		Staff:  *member,
		Grants: grants,
	}

	data, err := yaml.Marshal(&draft)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}

	return nil
}

// LoadDraft reads a YAML draft back into a form state and grant list.
func LoadDraft(path string) (*flow.State, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading draft: %w", err)
	}

	var draft Draft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return nil, nil, fmt.Errorf("decoding draft: %w", err)
	}

	return staff.StateOf(&draft.Staff), draft.Grants, nil
}
