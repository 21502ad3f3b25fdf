// internal/app/store/projects/store.go
package projects

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
	return &Store{c: db.Collection("projects")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Status == "" {
		p.Status = models.ProjectStatusActive
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// UpdateInfo overwrites the mutable fields (name, description, status).
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc, status string) (models.Project, error) {
	set := bson.M{
		"name":        name,
		"description": desc,
		"status":      status,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.Project{}, err
	}
	if res.MatchedCount == 0 {
		return models.Project{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// List returns all projects.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{})
}

// ListByOrganization returns all projects under an organization.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Project, error) {
	return s.find(ctx, bson.M{"organization_id": orgID})
}

// ListByIDs returns the projects whose ids appear in ids.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// CountByCreator returns the number of projects created by a user.
// Used by the user-deletion guard.
func (s *Store) CountByCreator(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"created_by": userID})
}

// Delete removes a project by ID. Returns the number of documents
// deleted (0 or 1); deleting an absent id is not an error.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
