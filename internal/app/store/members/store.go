// internal/app/store/members/store.go
package members

import (
	"context"
	"errors"
	"time"

	"github.com/archhub/archhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateMembership is returned when a user is already a member of
// the project. Backed by the unique (project_id, user_id) index.
var ErrDuplicateMembership = errors.New("user is already a member of this project")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("project_members")}
}

// Get returns the membership of a user in a project, if any.
func (s *Store) Get(ctx context.Context, projectID, userID primitive.ObjectID) (models.ProjectMember, error) {
	var m models.ProjectMember
	filter := bson.M{"project_id": projectID, "user_id": userID}
	if err := s.c.FindOne(ctx, filter).Decode(&m); err != nil {
		return models.ProjectMember{}, err
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ProjectMember, error) {
	var m models.ProjectMember
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.ProjectMember{}, err
	}
	return m, nil
}

// Add inserts a membership. Returns ErrDuplicateMembership when the
// user already belongs to the project.
func (s *Store) Add(ctx context.Context, m models.ProjectMember) (models.ProjectMember, error) {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ProjectMember{}, ErrDuplicateMembership
		}
		return models.ProjectMember{}, err
	}
	return m, nil
}

// ListByProject returns all memberships of a project.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.ProjectMember, error) {
	return s.find(ctx, bson.M{"project_id": projectID})
}

// ListByUser returns all memberships of a user across projects.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ProjectMember, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

// UpdateRole changes the role of an existing membership.
func (s *Store) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (models.ProjectMember, error) {
	update := bson.M{"$set": bson.M{"role": role}}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return models.ProjectMember{}, err
	}
	if res.MatchedCount == 0 {
		return models.ProjectMember{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// Remove deletes a membership by ID.
func (s *Store) Remove(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProject removes every membership of a project.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountOwners returns the number of owner memberships in a project.
// The membership guard keeps this above zero.
func (s *Store) CountOwners(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"project_id": projectID,
		"role":       models.MemberRoleOwner,
	})
}

// CountByUserOrAdder counts memberships where the user is either the
// member or the one who added the member. Used by the user-deletion
// guard.
func (s *Store) CountByUserOrAdder(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"user_id": userID},
		bson.M{"added_by": userID},
	}}
	return s.c.CountDocuments(ctx, filter)
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.ProjectMember, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ms []models.ProjectMember
	if err := cur.All(ctx, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}
