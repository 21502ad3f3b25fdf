// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses.
const (
	ProjectStatusActive   = "active"
	ProjectStatusInactive = "inactive"
	ProjectStatusArchived = "archived"
)

// ProjectStatuses is the full set of allowed project status identifiers.
var ProjectStatuses = []string{
	ProjectStatusActive,
	ProjectStatusInactive,
	ProjectStatusArchived,
}

// Project is an architecture effort inside an organization. Creating a
// project always creates exactly one owner membership for the creator;
// that is the only implicit membership in the system.
type Project struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	CreatedBy      primitive.ObjectID `bson:"created_by" json:"created_by"`
	Status         string             `bson:"status" json:"status"` // active | inactive | archived

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidProjectStatus reports whether status is one of the allowed statuses.
func ValidProjectStatus(status string) bool {
	for _, s := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}
