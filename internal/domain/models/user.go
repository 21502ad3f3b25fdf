// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	UserRoleAdmin  = "admin"
	UserRoleMember = "member"
)

// UserRoles is the full set of allowed user role identifiers.
var UserRoles = []string{UserRoleAdmin, UserRoleMember}

// User represents an account in the repository. Email is unique across
// the system (enforced by a unique index on the users collection).
//
// NOTE:
//   - Project membership is not embedded on User.
//     Use the project_members collection to discover a user's projects.
type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email          string              `bson:"email" json:"email"`
	Name           string              `bson:"name" json:"name"`
	Role           string              `bson:"role" json:"role"` // admin | member
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidUserRole reports whether role is one of the allowed user roles.
func ValidUserRole(role string) bool {
	for _, r := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}
