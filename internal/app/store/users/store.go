// internal/app/store/users/store.go
package users

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

var ErrDuplicateEmail = errors.New("a user with this email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateFields holds the whitelist of user fields that can change after
// creation. Nil pointers leave the stored value untouched.
type UpdateFields struct {
	Email          *string
	Name           *string
	Role           *string
	OrganizationID **primitive.ObjectID // set to new id, or to nil to clear
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Role != nil {
		set["role"] = *fields.Role
	}
	if fields.OrganizationID != nil {
		if *fields.OrganizationID == nil {
			unset["organization_id"] = ""
		} else {
			set["organization_id"] = **fields.OrganizationID
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	if res.MatchedCount == 0 {
		return models.User{}, mongo.ErrNoDocuments
	}
	return s.GetByID(ctx, id)
}

// List returns all users.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	return s.find(ctx, bson.M{})
}

// ListByOrganization returns all users whose organization_id matches.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.User, error) {
	return s.find(ctx, bson.M{"organization_id": orgID})
}

// DeleteByOrganization removes every user of an organization. Returns
// the number of documents deleted.
func (s *Store) DeleteByOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Delete removes a user by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
