package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/archhub/archhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data. Builders
// insert directly into collections, bypassing stores and the engine, so
// tests can arrange exactly the graph state they need — including
// states the engine itself would refuse to create.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "organizations", org)
	return org
}

// CreateUser creates a test user. orgID may be nil for users without an
// organization. The email is made unique per call.
func (f *Fixtures) CreateUser(ctx context.Context, name, role string, orgID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Email:          UniqueEmail(role),
		Name:           name,
		Role:           role,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "users", user)
	return user
}

// CreateProject creates a test project. No owner membership is created;
// use CreateMember when a test needs one.
func (f *Fixtures) CreateProject(ctx context.Context, name string, orgID, createdBy primitive.ObjectID) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:             primitive.NewObjectID(),
		Name:           name,
		OrganizationID: orgID,
		CreatedBy:      createdBy,
		Status:         models.ProjectStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.insert(ctx, "projects", project)
	return project
}

// CreateComponent creates a test component with the given type and layer.
func (f *Fixtures) CreateComponent(ctx context.Context, name, typ, layer string, projectID, createdBy primitive.ObjectID) models.Component {
	f.t.Helper()

	now := time.Now().UTC()
	comp := models.Component{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Type:      typ,
		Layer:     layer,
		ProjectID: projectID,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "components", comp)
	return comp
}

// CreateComponentAt creates a component with an explicit creation time,
// for activity-feed ordering tests.
func (f *Fixtures) CreateComponentAt(ctx context.Context, name, typ, layer string, projectID, createdBy primitive.ObjectID, createdAt time.Time) models.Component {
	f.t.Helper()

	comp := models.Component{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Type:      typ,
		Layer:     layer,
		ProjectID: projectID,
		CreatedBy: createdBy,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	f.insert(ctx, "components", comp)
	return comp
}

// CreateRelationship creates a relationship edge between two components.
func (f *Fixtures) CreateRelationship(ctx context.Context, sourceID, targetID primitive.ObjectID, typ string, createdBy primitive.ObjectID) models.ComponentRelationship {
	f.t.Helper()

	rel := models.ComponentRelationship{
		ID:                primitive.NewObjectID(),
		SourceComponentID: sourceID,
		TargetComponentID: targetID,
		RelationshipType:  typ,
		CreatedBy:         createdBy,
		CreatedAt:         time.Now().UTC(),
	}
	f.insert(ctx, "component_relationships", rel)
	return rel
}

// CreateArtifact creates a test artifact. componentID may be nil for
// project-level artifacts.
func (f *Fixtures) CreateArtifact(ctx context.Context, name string, projectID primitive.ObjectID, componentID *primitive.ObjectID, uploadedBy primitive.ObjectID) models.Artifact {
	f.t.Helper()

	art := models.Artifact{
		ID:          primitive.NewObjectID(),
		Name:        name,
		FilePath:    "artifacts/" + primitive.NewObjectID().Hex() + ".pdf",
		FileType:    "application/pdf",
		FileSize:    1024,
		ProjectID:   projectID,
		ComponentID: componentID,
		UploadedBy:  uploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	f.insert(ctx, "artifacts", art)
	return art
}

// CreateArtifactAt creates an artifact with an explicit creation time,
// for activity-feed ordering tests.
func (f *Fixtures) CreateArtifactAt(ctx context.Context, name string, projectID primitive.ObjectID, uploadedBy primitive.ObjectID, createdAt time.Time) models.Artifact {
	f.t.Helper()

	art := models.Artifact{
		ID:         primitive.NewObjectID(),
		Name:       name,
		FilePath:   "artifacts/" + primitive.NewObjectID().Hex() + ".pdf",
		FileType:   "application/pdf",
		FileSize:   1024,
		ProjectID:  projectID,
		UploadedBy: uploadedBy,
		CreatedAt:  createdAt,
	}
	f.insert(ctx, "artifacts", art)
	return art
}

// CreateMember creates a project membership row.
func (f *Fixtures) CreateMember(ctx context.Context, projectID, userID primitive.ObjectID, role string, addedBy primitive.ObjectID) models.ProjectMember {
	f.t.Helper()

	member := models.ProjectMember{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		AddedBy:   addedBy,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "project_members", member)
	return member
}

// Count returns the number of documents in collection matching filter.
func (f *Fixtures) Count(ctx context.Context, collection string, filter interface{}) int64 {
	f.t.Helper()

	n, err := f.db.Collection(collection).CountDocuments(ctx, filter)
	if err != nil {
		f.t.Fatalf("CountDocuments on %s failed: %v", collection, err)
	}
	return n
}

func (f *Fixtures) insert(ctx context.Context, collection string, doc interface{}) {
	f.t.Helper()

	if _, err := f.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", collection, err)
	}
}
