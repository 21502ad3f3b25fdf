// internal/app/graph/relationships/validator.go
//
// Package relationships validates component relationships before they
// are persisted. A relationship is a directed, typed edge between two
// components of the same project; the validator resolves both ends,
// rejects self-links and cross-project links, and checks the type
// against the allowed set. Persistence is a separate step so callers
// can wrap it in a transaction with other writes.
package relationships

import (
	"context"
	"errors"

	componentstore "github.com/archhub/archhub/internal/app/store/components"
	relationshipstore "github.com/archhub/archhub/internal/app/store/relationships"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Validator struct {
	components    *componentstore.Store
	relationships *relationshipstore.Store
	log           *zap.Logger
}

func New(components *componentstore.Store, rels *relationshipstore.Store, log *zap.Logger) *Validator {
	return &Validator{components: components, relationships: rels, log: log}
}

// ValidateAndPrepare resolves both endpoints and returns a relationship
// record ready to persist. It has no side effects.
//
// Duplicate edges (same ordered pair, same type) are allowed; the
// validator does not check for an existing edge.
func (v *Validator) ValidateAndPrepare(ctx context.Context, sourceID, targetID primitive.ObjectID, relType, description string, createdBy primitive.ObjectID) (models.ComponentRelationship, error) {
	if !models.ValidRelationshipType(relType) {
		return models.ComponentRelationship{}, apperr.Validation("relationship-type", "unknown relationship type %q", relType)
	}

	// Both endpoints must resolve before any structural rule is checked,
	// so an unresolvable pair always reports NotFound.
	source, err := v.components.GetByID(ctx, sourceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ComponentRelationship{}, apperr.NotFound("component", sourceID.Hex())
		}
		return models.ComponentRelationship{}, err
	}
	target, err := v.components.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ComponentRelationship{}, apperr.NotFound("component", targetID.Hex())
		}
		return models.ComponentRelationship{}, err
	}

	if sourceID == targetID {
		return models.ComponentRelationship{}, apperr.Validation("self-relationship", "a component cannot have a relationship with itself")
	}
	if source.ProjectID != target.ProjectID {
		return models.ComponentRelationship{}, apperr.Validation("cross-project", "components belong to different projects")
	}

	return models.ComponentRelationship{
		SourceComponentID: sourceID,
		TargetComponentID: targetID,
		RelationshipType:  relType,
		Description:       description,
		CreatedBy:         createdBy,
	}, nil
}

// Create validates and persists a relationship in one call.
func (v *Validator) Create(ctx context.Context, sourceID, targetID primitive.ObjectID, relType, description string, createdBy primitive.ObjectID) (models.ComponentRelationship, error) {
	rel, err := v.ValidateAndPrepare(ctx, sourceID, targetID, relType, description, createdBy)
	if err != nil {
		return models.ComponentRelationship{}, err
	}
	created, err := v.relationships.Create(ctx, rel)
	if err != nil {
		return models.ComponentRelationship{}, err
	}
	v.log.Info("relationship created",
		zap.String("relationship_id", created.ID.Hex()),
		zap.String("type", created.RelationshipType))
	return created, nil
}
