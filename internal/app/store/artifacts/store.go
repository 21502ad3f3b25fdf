// internal/app/store/artifacts/store.go
package artifacts

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
	return &Store{c: db.Collection("artifacts")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Artifact, error) {
	var art models.Artifact
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&art); err != nil {
		return models.Artifact{}, err
	}
	return art, nil
}

func (s *Store) Create(ctx context.Context, art models.Artifact) (models.Artifact, error) {
	art.ID = primitive.NewObjectID()
	art.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, art); err != nil {
		return models.Artifact{}, err
	}
	return art, nil
}

// List returns all artifacts.
func (s *Store) List(ctx context.Context) ([]models.Artifact, error) {
	return s.find(ctx, bson.M{}, nil)
}

// ListByProject returns all artifacts of a project.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Artifact, error) {
	return s.find(ctx, bson.M{"project_id": projectID}, nil)
}

// ListByComponent returns the artifacts linked to a component.
func (s *Store) ListByComponent(ctx context.Context, componentID primitive.ObjectID) ([]models.Artifact, error) {
	return s.find(ctx, bson.M{"component_id": componentID}, nil)
}

// ListRecentByProject returns up to limit artifacts of a project,
// newest first.
func (s *Store) ListRecentByProject(ctx context.Context, projectID primitive.ObjectID, limit int64) ([]models.Artifact, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"project_id": projectID}, opts)
}

// CountByProject returns the number of artifacts in a project.
func (s *Store) CountByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"project_id": projectID})
}

// CountByUploader returns the number of artifacts uploaded by a user.
// Used by the user-deletion guard.
func (s *Store) CountByUploader(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"uploaded_by": userID})
}

// Delete removes an artifact by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProject removes every artifact of a project.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByComponent removes every artifact linked to a component.
func (s *Store) DeleteByComponent(ctx context.Context, componentID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"component_id": componentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Artifact, error) {
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

	var arts []models.Artifact
	if err := cur.All(ctx, &arts); err != nil {
		return nil, err
	}
	return arts, nil
}
