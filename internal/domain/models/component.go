// internal/domain/models/component.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Component is a typed architectural element inside a project. Every
// component lives in exactly one of the four architecture layers, and
// its type must belong to the set valid for that layer (see
// TypesForLayer in componenttypes.go).
type Component struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Type        string             `bson:"type" json:"type"`
	Layer       string             `bson:"layer" json:"layer"`
	ProjectID   primitive.ObjectID `bson:"project_id" json:"project_id"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`

	// Metadata is an opaque JSON string for component-specific data.
	Metadata string `bson:"metadata,omitempty" json:"metadata,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
