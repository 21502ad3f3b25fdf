// internal/app/store/components/store.go
package components

import (
	"context"
	"time"

	"github.com/archhub/archhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("components")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Component, error) {
	var comp models.Component
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&comp); err != nil {
		return models.Component{}, err
	}
	return comp, nil
}

func (s *Store) Create(ctx context.Context, comp models.Component) (models.Component, error) {
	now := time.Now().UTC()
	comp.ID = primitive.NewObjectID()
	comp.CreatedAt = now
	comp.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, comp); err != nil {
		return models.Component{}, err
	}
	return comp, nil
}

// UpdateFields holds the whitelist of component fields that can change
// after creation. Nil pointers leave the stored value untouched.
type UpdateFields struct {
	Name        *string
	Description *string
	Type        *string
	Layer       *string
	Metadata    *string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (models.Component, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Type != nil {
		set["type"] = *fields.Type
	}
	if fields.Layer != nil {
		set["layer"] = *fields.Layer
	}
	if fields.Metadata != nil {
		set["metadata"] = *fields.Metadata
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.Component{}, err
	}
	if res.MatchedCount == 0 {
		return models.Component{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// List returns all components.
func (s *Store) List(ctx context.Context) ([]models.Component, error) {
	return s.find(ctx, bson.M{}, nil)
}

// ListByProject returns all components of a project.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Component, error) {
	return s.find(ctx, bson.M{"project_id": projectID}, nil)
}

// ListByLayer returns a project's components in one layer.
func (s *Store) ListByLayer(ctx context.Context, projectID primitive.ObjectID, layer string) ([]models.Component, error) {
	return s.find(ctx, bson.M{"project_id": projectID, "layer": layer}, nil)
}

// ListRecentByProject returns up to limit components of a project,
// newest first. Feeds the dashboard's recent-activity list.
func (s *Store) ListRecentByProject(ctx context.Context, projectID primitive.ObjectID, limit int64) ([]models.Component, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"project_id": projectID}, opts)
}

// IDsByProject returns the ids of every component in a project.
func (s *Store) IDsByProject(ctx context.Context, projectID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}

// CountByCreator returns the number of components created by a user.
// Used by the user-deletion guard.
func (s *Store) CountByCreator(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"created_by": userID})
}

// Delete removes a component by ID. Returns the number of documents
// deleted (0 or 1); deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProject removes every component of a project. Returns the
// number of documents deleted.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Component, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.c.Find(ctx, filter, opts)
	} else {
		cur, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comps []models.Component
	if err := cur.All(ctx, &comps); err != nil {
		return nil, err
	}
	return comps, nil
}
