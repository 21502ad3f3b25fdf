// internal/app/store/relationships/store.go
package relationships

import (
	"context"
	"time"

	"github.com/archhub/archhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("component_relationships")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ComponentRelationship, error) {
	var rel models.ComponentRelationship
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rel); err != nil {
		return models.ComponentRelationship{}, err
	}
	return rel, nil
}

func (s *Store) Create(ctx context.Context, rel models.ComponentRelationship) (models.ComponentRelationship, error) {
	rel.ID = primitive.NewObjectID()
	rel.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, rel); err != nil {
		return models.ComponentRelationship{}, err
	}
	return rel, nil
}

// List returns all relationships.
func (s *Store) List(ctx context.Context) ([]models.ComponentRelationship, error) {
	return s.find(ctx, bson.M{})
}

// ListByComponent returns every relationship that touches the component
// on either end.
func (s *Store) ListByComponent(ctx context.Context, componentID primitive.ObjectID) ([]models.ComponentRelationship, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"source_component_id": componentID},
		bson.M{"target_component_id": componentID},
	}}
	return s.find(ctx, filter)
}

// ListBySourceIn returns relationships whose source is one of the given
// components. The dashboard counts relationships this way so that a
// relationship between two project components is counted once.
func (s *Store) ListBySourceIn(ctx context.Context, componentIDs []primitive.ObjectID) ([]models.ComponentRelationship, error) {
	if len(componentIDs) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"source_component_id": bson.M{"$in": componentIDs}})
}

// CountBySourceIn counts relationships originating from any of the
// given components.
func (s *Store) CountBySourceIn(ctx context.Context, componentIDs []primitive.ObjectID) (int64, error) {
	if len(componentIDs) == 0 {
		return 0, nil
	}
	return s.c.CountDocuments(ctx, bson.M{"source_component_id": bson.M{"$in": componentIDs}})
}

// CountByCreator returns the number of relationships created by a user.
// Used by the user-deletion guard.
func (s *Store) CountByCreator(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"created_by": userID})
}

// Delete removes a relationship by ID. Deleting an absent id is not an
// error; the count tells the caller whether anything happened.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByComponent removes every relationship touching the component
// on either end.
func (s *Store) DeleteByComponent(ctx context.Context, componentID primitive.ObjectID) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"source_component_id": componentID},
		bson.M{"target_component_id": componentID},
	}}
	res, err := s.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByComponentIn removes every relationship with either end in the
// given component set. Used when cascading a project delete.
func (s *Store) DeleteByComponentIn(ctx context.Context, componentIDs []primitive.ObjectID) (int64, error) {
	if len(componentIDs) == 0 {
		return 0, nil
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"source_component_id": bson.M{"$in": componentIDs}},
		bson.M{"target_component_id": bson.M{"$in": componentIDs}},
	}}
	res, err := s.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.ComponentRelationship, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rels []models.ComponentRelationship
	if err := cur.All(ctx, &rels); err != nil {
		return nil, err
	}
	return rels, nil
}
