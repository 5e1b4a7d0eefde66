package access_test

import (
	"context"
	"testing"

	"github.com/Leganyst/photo-studio/internal/access"
	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
	"github.com/Leganyst/photo-studio/internal/testutil"
)

func TestRoleGate(t *testing.T) {
	db := testutil.OpenDB(t)
	users := repository.NewGormUserRepository(db)
	ctx := context.Background()

	if err := access.SeedRoles(ctx, users); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	// повторный запуск ничего не ломает
	if err := access.SeedRoles(ctx, users); err != nil {
		t.Fatalf("seed roles again: %v", err)
	}

	coord := testutil.SeedUser(t, db, "coord@studio.test", model.StatusActive, model.RoleCoordinator)
	ph := testutil.SeedUser(t, db, "ph@studio.test", model.StatusActive, model.RolePhotographer)
	gone := testutil.SeedUser(t, db, "gone@studio.test", model.StatusInactive, model.RoleAdmin)

	gate := access.NewRoleGate(users)

	cases := []struct {
		name  string
		actor int64
		perm  string
		code  apperr.Code
	}{
		{"coordinator creates", coord.ID, access.PermSessionCreate, ""},
		{"coordinator cannot mark attended", coord.ID, access.PermSessionMarkAttended, apperr.CodePermissionDenied},
		{"photographer marks attended", ph.ID, access.PermSessionMarkAttended, ""},
		{"photographer cannot cancel", ph.ID, access.PermSessionCancel, apperr.CodePermissionDenied},
		{"inactive admin", gone.ID, access.PermSessionCreate, apperr.CodePermissionDenied},
		{"unknown actor", 4242, access.PermSessionCreate, apperr.CodeUnauthenticated},
		{"anonymous", 0, access.PermSessionCreate, apperr.CodeUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := gate.Authorize(ctx, tc.actor, tc.perm)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("expected access, got %v", err)
				}
				return
			}
			if got := apperr.GetCode(err); got != tc.code {
				t.Fatalf("expected %s, got %s (%v)", tc.code, got, err)
			}
		})
	}
}

func TestDefaultRolePermissions(t *testing.T) {
	admin := access.DefaultRolePermissions[model.RoleAdmin]
	for role, perms := range access.DefaultRolePermissions {
		for _, p := range perms {
			found := false
			for _, a := range admin {
				if a == p {
					found = true
				}
			}
			if !found {
				t.Fatalf("admin lacks %s granted to %s", p, role)
			}
		}
	}
}

func TestActorContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := access.ActorFrom(ctx); ok {
		t.Fatal("empty context must not carry an actor")
	}

	actor, ok := access.ActorFrom(access.WithActor(ctx, 7))
	if !ok || actor != 7 {
		t.Fatalf("expected actor 7, got %d (%v)", actor, ok)
	}

	if _, ok := access.ActorFrom(access.WithActor(ctx, -1)); ok {
		t.Fatal("non-positive ids are not actors")
	}
}

func TestAllowAll(t *testing.T) {
	if err := (access.AllowAll{}).Authorize(context.Background(), 0, access.PermSessionCancel); err != nil {
		t.Fatalf("AllowAll must allow: %v", err)
	}
}
