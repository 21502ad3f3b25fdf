// internal/app/graph/membership/guard.go
//
// Package membership enforces the project membership invariants: one
// membership row per (project, user), and a project that has members
// always keeps at least one owner. Role changes are deliberately
// unguarded; only removal checks the last-owner rule.
package membership

import (
	"context"
	"errors"

	memberstore "github.com/archhub/archhub/internal/app/store/members"
	projectstore "github.com/archhub/archhub/internal/app/store/projects"
	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Guard struct {
	projects *projectstore.Store
	users    *userstore.Store
	members  *memberstore.Store
	log      *zap.Logger
}

func New(projects *projectstore.Store, users *userstore.Store, members *memberstore.Store, log *zap.Logger) *Guard {
	return &Guard{projects: projects, users: users, members: members, log: log}
}

// AddMember adds a user to a project. Project, user, and adder must all
// resolve; a second membership for the same pair is a Conflict.
func (g *Guard) AddMember(ctx context.Context, projectID, userID primitive.ObjectID, role string, addedBy primitive.ObjectID) (models.ProjectMember, error) {
	if !models.ValidMemberRole(role) {
		return models.ProjectMember{}, apperr.Validation("member-role", "unknown member role %q", role)
	}
	if _, err := g.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProjectMember{}, apperr.NotFound("project", projectID.Hex())
		}
		return models.ProjectMember{}, err
	}
	if _, err := g.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProjectMember{}, apperr.NotFound("user", userID.Hex())
		}
		return models.ProjectMember{}, err
	}
	if _, err := g.users.GetByID(ctx, addedBy); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProjectMember{}, apperr.NotFound("user", addedBy.Hex())
		}
		return models.ProjectMember{}, err
	}

	m, err := g.members.Add(ctx, models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		AddedBy:   addedBy,
	})
	if err != nil {
		if errors.Is(err, memberstore.ErrDuplicateMembership) {
			return models.ProjectMember{}, apperr.Conflict("user is already a member of this project")
		}
		return models.ProjectMember{}, err
	}
	return m, nil
}

// RemoveMember removes a user from a project. Removing the last owner
// is refused so a populated project never ends up ownerless.
func (g *Guard) RemoveMember(ctx context.Context, projectID, userID primitive.ObjectID) error {
	m, err := g.members.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.Conflict("user is not a member of this project")
		}
		return err
	}

	if m.Role == models.MemberRoleOwner {
		owners, err := g.members.CountOwners(ctx, projectID)
		if err != nil {
			return err
		}
		if owners <= 1 {
			return apperr.Conflict("cannot remove the last owner of a project")
		}
	}

	_, err = g.members.Remove(ctx, m.ID)
	return err
}

// UpdateMemberRole overwrites a member's role. The last-owner rule is
// not applied here; demoting the sole owner through a role change is
// allowed while removing them is not.
func (g *Guard) UpdateMemberRole(ctx context.Context, projectID, userID primitive.ObjectID, role string) (models.ProjectMember, error) {
	if !models.ValidMemberRole(role) {
		return models.ProjectMember{}, apperr.Validation("member-role", "unknown member role %q", role)
	}
	m, err := g.members.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProjectMember{}, apperr.NotFound("membership", projectID.Hex()+"/"+userID.Hex())
		}
		return models.ProjectMember{}, err
	}
	return g.members.UpdateRole(ctx, m.ID, role)
}
