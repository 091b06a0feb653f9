package refdata

import (
	"context"
	"errors"
	"testing"
	"time"
)

// orderedSource settles its lookups in a forced order: role permissions
// first, roles last, with real delays in between.
type orderedSource struct {
	rolesDelay time.Duration
	failRoles  bool
	settled    chan string
}

func (s *orderedSource) Roles(ctx context.Context) ([]Role, error) {
	select {
	case <-time.After(s.rolesDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if s.failRoles {
		return nil, errors.New("roles unavailable")
	}
	s.settled <- "roles"
	return []Role{{ID: "1", Name: "Doctor"}}, nil
}

func (s *orderedSource) Permissions(ctx context.Context) ([]Permission, error) {
	s.settled <- "permissions"
	return []Permission{{Key: "patients.read", Label: "View patients"}}, nil
}

func (s *orderedSource) RolePermissions(ctx context.Context) (map[string][]string, error) {
	s.settled <- "mapping"
	return map[string][]string{"Doctor": {"patients.read"}}, nil
}

func TestFetch_WaitsForAllRegardlessOfSettleOrder(t *testing.T) {
	// Roles resolves last; Fetch must still return the complete set so the
	// reconciliation join can run against any part of it.
	src := &orderedSource{rolesDelay: 30 * time.Millisecond, settled: make(chan string, 3)}

	set, err := Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(set.Roles) != 1 || len(set.Catalog) != 1 || set.RolePermissions == nil {
		t.Errorf("incomplete set after Fetch: %+v", set)
	}
	close(src.settled)
	var order []string
	for s := range src.settled {
		order = append(order, s)
	}
	if len(order) != 3 || order[len(order)-1] != "roles" {
		t.Errorf("settle order = %v, want roles last", order)
	}
}

func TestFetch_SingleFailureFailsTheFetch(t *testing.T) {
	src := &orderedSource{failRoles: true, settled: make(chan string, 3)}

	_, err := Fetch(context.Background(), src)

	if err == nil || err.Error() != "roles unavailable" {
		t.Errorf("err = %v, want roles unavailable", err)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &orderedSource{rolesDelay: time.Second, settled: make(chan string, 3)}

	_, err := Fetch(ctx, src)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSet_PermissionByKey(t *testing.T) {
	set := &Set{Catalog: []Permission{{Key: "a", Label: "A"}}}

	if _, ok := set.PermissionByKey("a"); !ok {
		t.Error("known key not found")
	}
	if _, ok := set.PermissionByKey("b"); ok {
		t.Error("unknown key found")
	}
}
