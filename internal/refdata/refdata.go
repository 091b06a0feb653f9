// Package refdata models the read-only lookup tables fetched once per form
// session: available roles, the permission catalog, and the role→permission
// mapping that buckets granted permissions by role.
package refdata

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Role is an assignable staff role.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Permission is one entry of the permission catalog.
type Permission struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Group string `json:"group"`
}

// Set is the joined reference data for one session. Treated as read-only
// after Fetch returns.
type Set struct {
	Roles           []Role
	Catalog         []Permission
	RolePermissions map[string][]string
}

// Source provides the three reference lookups. The HTTP gateway implements
// it; tests substitute fakes.
type Source interface {
	Roles(ctx context.Context) ([]Role, error)
	Permissions(ctx context.Context) ([]Permission, error)
	RolePermissions(ctx context.Context) (map[string][]string, error)
}

// Fetch issues the three lookups concurrently and returns only once all of
// them have settled, so callers may join against any part of the set without
// caring which request finished first. Any single failure fails the fetch.
func Fetch(ctx context.Context, src Source) (*Set, error) {
	set := &Set{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		roles, err := src.Roles(ctx)
		if err != nil {
			return err
		}
		set.Roles = roles
		return nil
	})
	g.Go(func() error {
		catalog, err := src.Permissions(ctx)
		if err != nil {
			return err
		}
		set.Catalog = catalog
		return nil
	})
	g.Go(func() error {
		mapping, err := src.RolePermissions(ctx)
		if err != nil {
			return err
		}
		set.RolePermissions = mapping
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return set, nil
}

// PermissionByKey looks a permission up in the catalog.
func (s *Set) PermissionByKey(key string) (Permission, bool) {
	for _, p := range s.Catalog {
		if p.Key == key {
			return p, true
		}
	}
	return Permission{}, false
}
