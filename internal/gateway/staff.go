package gateway

import (
	"context"
	"net/http"

	"github.com/caredesk/caredesk/internal/refdata"
	"github.com/caredesk/caredesk/internal/staff"
)

// Roles fetches the assignable roles. Part of the refdata.Source contract.
func (c *Client) Roles(ctx context.Context) ([]refdata.Role, error) {
	var out []refdata.Role
	if err := c.doJSON(ctx, http.MethodGet, "/api/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Permissions fetches the permission catalog.
func (c *Client) Permissions(ctx context.Context) ([]refdata.Permission, error) {
	var out []refdata.Permission
	if err := c.doJSON(ctx, http.MethodGet, "/api/permissions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RolePermissions fetches the role→permission mapping.
func (c *Client) RolePermissions(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string)
	if err := c.doJSON(ctx, http.MethodGet, "/api/role-permissions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStaff loads an existing staff member for editing.
func (c *Client) GetStaff(ctx context.Context, id string) (*staff.Staff, error) {
	var out staff.Staff
	if err := c.doJSON(ctx, http.MethodGet, "/api/staff/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StaffGrants fetches the permission keys currently granted to a staff
// member. Reconciliation of these into per-role groups must wait for the
// reference set; see refdata.Fetch.
func (c *Client) StaffGrants(ctx context.Context, id string) ([]string, error) {
	var out []string
	if err := c.doJSON(ctx, http.MethodGet, "/api/staff/"+id+"/permissions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStaff persists a new staff member and returns it with its assigned id.
func (c *Client) CreateStaff(ctx context.Context, s *staff.Staff) (*staff.Staff, error) {
	var out staff.Staff
	if err := c.doJSON(ctx, http.MethodPost, "/api/staff", nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStaff persists changes to an existing staff member.
func (c *Client) UpdateStaff(ctx context.Context, s *staff.Staff) (*staff.Staff, error) {
	var out staff.Staff
	if err := c.doJSON(ctx, http.MethodPut, "/api/staff/"+s.ID, nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveStaffGrants persists the permission grants of a staff member.
func (c *Client) SaveStaffGrants(ctx context.Context, id string, keys []string) error {
	body := struct {
		Permissions []string `json:"permissions"`
	}{Permissions: keys}
	return c.doJSON(ctx, http.MethodPut, "/api/staff/"+id+"/permissions", nil, body, nil)
}

// SaveOutcome classifies the result of the two-phase staff save.
type SaveOutcome int

const (
	// SaveFailed: the entity write itself failed; nothing was persisted.
	SaveFailed SaveOutcome = iota
	// Saved: entity and permission grants both persisted.
	Saved
	// SavedPermissionsFailed: the entity persisted but the follow-up grants
	// write failed. There is no rollback across the two writes; the partial
	// result is reported distinctly so the user knows what stuck.
	SavedPermissionsFailed
)

func (o SaveOutcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case SavedPermissionsFailed:
		return "saved, permissions failed"
	default:
		return "failed"
	}
}

// SaveStaff runs the two-phase write: create or update the entity, then
// persist its permission grants. The returned staff carries the backend's
// assigned id on create. The second phase's error is returned alongside
// SavedPermissionsFailed rather than undoing the first.
func (c *Client) SaveStaff(ctx context.Context, s *staff.Staff, grants []string) (*staff.Staff, SaveOutcome, error) {
	var (
		saved *staff.Staff
		err   error
	)
	if s.ID == "" {
		saved, err = c.CreateStaff(ctx, s)
	} else {
		saved, err = c.UpdateStaff(ctx, s)
	}
	if err != nil {
		return nil, SaveFailed, err
	}

	if err := c.SaveStaffGrants(ctx, saved.ID, grants); err != nil {
		return saved, SavedPermissionsFailed, err
	}
	return saved, Saved, nil
}
