// internal/domain/models/projectmember.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project member roles.
const (
	MemberRoleOwner  = "owner"
	MemberRoleEditor = "editor"
	MemberRoleViewer = "viewer"
)

// ProjectMemberRoles is the full set of allowed membership roles.
var ProjectMemberRoles = []string{
	MemberRoleOwner,
	MemberRoleEditor,
	MemberRoleViewer,
}

// ProjectMember is the authoritative join between users and projects.
// Exactly one document per (project_id, user_id); role is a scalar.
// A project with at least one member must always retain at least one
// member with the owner role.
type ProjectMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role      string             `bson:"role" json:"role"` // owner | editor | viewer
	AddedBy   primitive.ObjectID `bson:"added_by" json:"added_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ValidMemberRole reports whether role is one of the allowed membership
// roles.
func ValidMemberRole(role string) bool {
	for _, r := range ProjectMemberRoles {
		if r == role {
			return true
		}
	}
	return false
}
