// Package access answers "may this actor do that" for the session core.
package access

import (
	"context"
	"fmt"
	"slices"

	"github.com/Leganyst/photo-studio/internal/apperr"
	"github.com/Leganyst/photo-studio/internal/model"
	"github.com/Leganyst/photo-studio/internal/repository"
)

// Коды прав сессий.
const (
	PermSessionCreate          = "session.create"
	PermSessionViewAll         = "session.view.all"
	PermSessionEditAll         = "session.edit.all"
	PermSessionTransition      = "session.transition"
	PermSessionCancel          = "session.cancel"
	PermSessionPayment         = "session.payment"
	PermSessionAssignResources = "session.assign-resources"
	PermSessionMarkAttended    = "session.mark-attended"
	PermSessionMarkReady       = "session.mark-ready"
)

// DefaultRolePermissions is the permission set seeded for each built-in role.
var DefaultRolePermissions = map[string][]string{
	model.RoleAdmin: {
		PermSessionCreate, PermSessionViewAll, PermSessionEditAll, PermSessionTransition,
		PermSessionCancel, PermSessionPayment, PermSessionAssignResources,
		PermSessionMarkAttended, PermSessionMarkReady,
	},
	model.RoleCoordinator: {
		PermSessionCreate, PermSessionViewAll, PermSessionEditAll, PermSessionTransition,
		PermSessionCancel, PermSessionPayment, PermSessionAssignResources,
	},
	model.RolePhotographer: {PermSessionMarkAttended},
	model.RoleEditor:       {PermSessionMarkReady},
}

var roleNames = map[string]string{
	model.RoleAdmin:        "Administrator",
	model.RoleCoordinator:  "Coordinator",
	model.RolePhotographer: "Photographer",
	model.RoleEditor:       "Editor",
}

// Gate authorizes an actor before a command reaches the services.
type Gate interface {
	Authorize(ctx context.Context, actor int64, permission string) error
}

// RoleGate grants a permission when any active role of an active user holds it.
type RoleGate struct {
	users repository.UserRepository
}

func NewRoleGate(users repository.UserRepository) *RoleGate {
	return &RoleGate{users: users}
}

func (g *RoleGate) Authorize(ctx context.Context, actor int64, permission string) error {
	if _, err := ValidateActor(ctx, g.users, actor); err != nil {
		return err
	}
	perms, err := g.users.Permissions(ctx, actor)
	if err != nil {
		return fmt.Errorf("load permissions: %w", err)
	}
	if !slices.Contains(perms, permission) {
		return apperr.PermissionDenied(permission)
	}
	return nil
}

// AllowAll пропускает всё; для локального запуска и тестов.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, int64, string) error { return nil }

// SeedRoles creates the built-in roles with their permissions. Safe to run
// on every start.
func SeedRoles(ctx context.Context, users repository.UserRepository) error {
	codes := make([]string, 0, len(DefaultRolePermissions))
	for code := range DefaultRolePermissions {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	for _, code := range codes {
		if _, err := users.EnsureRole(ctx, code, roleNames[code], DefaultRolePermissions[code]); err != nil {
			return fmt.Errorf("seed role %s: %w", code, err)
		}
	}
	return nil
}
