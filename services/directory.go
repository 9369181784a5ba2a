package services

import (
	"context"

	"journal-workflow/models"
	"journal-workflow/repositories"

	"github.com/google/uuid"
)

// RoleInfo is what the identity directory reports about an actor.
type RoleInfo struct {
	Role     models.UserRole
	Approved bool
	Active   bool
}

// RoleDirectory is the identity service as seen by the workflow. It is read-only.
type RoleDirectory interface {
	ResolveRole(ctx context.Context, actorID uuid.UUID) (RoleInfo, error)
}

type userDirectory struct {
	users repositories.UserRepository
}

func NewRoleDirectory(users repositories.UserRepository) RoleDirectory {
	return &userDirectory{users: users}
}

func (d *userDirectory) ResolveRole(ctx context.Context, actorID uuid.UUID) (RoleInfo, error) {
	user, err := d.users.GetByID(ctx, actorID)
	if err != nil {
		return RoleInfo{}, err
	}
	return RoleInfo{Role: user.Role, Approved: user.IsApproved, Active: user.IsActive}, nil
}
