// internal/domain/models/relationship.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical relationship type identifiers.
const (
	RelationshipDependsOn  = "depends_on"
	RelationshipSupports   = "supports"
	RelationshipUses       = "uses"
	RelationshipImplements = "implements"
	RelationshipFlowsTo    = "flows_to"
)

// RelationshipTypes is the full set of allowed relationship type
// identifiers.
var RelationshipTypes = []string{
	RelationshipDependsOn,
	RelationshipSupports,
	RelationshipUses,
	RelationshipImplements,
	RelationshipFlowsTo,
}

// ComponentRelationship is a directed, typed edge between two components
// of the same project. Relationships are create-or-delete only; there is
// no update path. Duplicate edges between the same ordered pair with the
// same type are allowed.
type ComponentRelationship struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SourceComponentID primitive.ObjectID `bson:"source_component_id" json:"source_component_id"`
	TargetComponentID primitive.ObjectID `bson:"target_component_id" json:"target_component_id"`
	RelationshipType  string             `bson:"relationship_type" json:"relationship_type"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedBy         primitive.ObjectID `bson:"created_by" json:"created_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ValidRelationshipType reports whether typ is one of the allowed
// relationship types.
func ValidRelationshipType(typ string) bool {
	for _, t := range RelationshipTypes {
		if t == typ {
			return true
		}
	}
	return false
}
