package staff

import (
	"github.com/caredesk/caredesk/internal/refdata"
)

// PermissionGroup is the per-role permission panel shown for every selected
// non-privileged role: the catalog entries assigned to that role, with the
// subset currently granted to the entity marked.
type PermissionGroup struct {
	Role        string
	Permissions []refdata.Permission
	Granted     map[string]bool
}

// GroupGrants buckets an entity's held permission keys by selected role,
// joining them against the role→permission mapping. It requires the full
// reference set, which is why callers must wait for refdata.Fetch before
// reconciling. The privileged role holds everything implicitly and gets no
// panel.
func GroupGrants(set *refdata.Set, selectedRoles, granted []string) []PermissionGroup {
	held := make(map[string]bool, len(granted))
	for _, k := range granted {
		held[k] = true
	}

	var groups []PermissionGroup
	for _, role := range selectedRoles {
		if role == RoleAdmin {
			continue
		}
		keys := set.RolePermissions[role]
		if len(keys) == 0 {
			continue
		}
		g := PermissionGroup{Role: role, Granted: make(map[string]bool)}
		for _, key := range keys {
			p, ok := set.PermissionByKey(key)
			if !ok {
				// Mapping may reference retired catalog entries; skip them
				// rather than surfacing a phantom checkbox.
				continue
			}
			g.Permissions = append(g.Permissions, p)
			if held[key] {
				g.Granted[key] = true
			}
		}
		if len(g.Permissions) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// GrantKeys flattens the granted subset of the groups back into the list of
// permission keys to persist.
func GrantKeys(groups []PermissionGroup) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, p := range g.Permissions {
			if g.Granted[p.Key] && !seen[p.Key] {
				seen[p.Key] = true
				keys = append(keys, p.Key)
			}
		}
	}
	return keys
}
