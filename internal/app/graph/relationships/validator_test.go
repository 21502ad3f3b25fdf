package relationships_test

import (
	"testing"

	graphrels "github.com/archhub/archhub/internal/app/graph/relationships"
	componentstore "github.com/archhub/archhub/internal/app/store/components"
	relationshipstore "github.com/archhub/archhub/internal/app/store/relationships"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/archhub/archhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newValidator(db *mongo.Database) *graphrels.Validator {
	return graphrels.New(componentstore.New(db), relationshipstore.New(db), zap.NewNop())
}

func TestValidator_ValidateAndPrepare(t *testing.T) {
	db := testutil.SetupTestDB(t)
	validator := newValidator(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	projectA := fixtures.CreateProject(ctx, "Project A", org.ID, owner.ID)
	projectB := fixtures.CreateProject(ctx, "Project B", org.ID, owner.ID)
	a := fixtures.CreateComponent(ctx, "A", models.TypeService, models.LayerApplication, projectA.ID, owner.ID)
	b := fixtures.CreateComponent(ctx, "B", models.TypeApplication, models.LayerApplication, projectA.ID, owner.ID)
	other := fixtures.CreateComponent(ctx, "Other", models.TypeService, models.LayerApplication, projectB.ID, owner.ID)
	missing := primitive.NewObjectID()

	tests := []struct {
		name    string
		source  primitive.ObjectID
		target  primitive.ObjectID
		relType string
		check   func(error) bool
		wantErr string
	}{
		{
			name:    "valid",
			source:  a.ID,
			target:  b.ID,
			relType: models.RelationshipDependsOn,
		},
		{
			name:    "unknown type",
			source:  a.ID,
			target:  b.ID,
			relType: "friends_with",
			check:   apperr.IsValidation,
			wantErr: "validation error",
		},
		{
			name:    "missing source",
			source:  primitive.NewObjectID(),
			target:  b.ID,
			relType: models.RelationshipDependsOn,
			check:   apperr.IsNotFound,
			wantErr: "not found",
		},
		{
			name:    "missing target",
			source:  a.ID,
			target:  primitive.NewObjectID(),
			relType: models.RelationshipDependsOn,
			check:   apperr.IsNotFound,
			wantErr: "not found",
		},
		{
			name:    "self relationship",
			source:  a.ID,
			target:  a.ID,
			relType: models.RelationshipDependsOn,
			check:   apperr.IsValidation,
			wantErr: "validation error",
		},
		{
			// unresolvable ids fail on existence, not on the self rule
			name:    "self relationship with unknown component",
			source:  missing,
			target:  missing,
			relType: models.RelationshipDependsOn,
			check:   apperr.IsNotFound,
			wantErr: "not found",
		},
		{
			name:    "cross project",
			source:  a.ID,
			target:  other.ID,
			relType: models.RelationshipDependsOn,
			check:   apperr.IsValidation,
			wantErr: "validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := validator.ValidateAndPrepare(ctx, tt.source, tt.target, tt.relType, "", owner.ID)
			if tt.check == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if rel.SourceComponentID != tt.source || rel.TargetComponentID != tt.target {
					t.Error("prepared record has wrong endpoints")
				}
				if !rel.ID.IsZero() {
					t.Error("prepare must not assign an ID")
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s error, got nil", tt.wantErr)
			}
			if !tt.check(err) {
				t.Errorf("expected %s error, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidator_PrepareHasNoSideEffects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	validator := newValidator(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)
	a := fixtures.CreateComponent(ctx, "A", models.TypeService, models.LayerApplication, project.ID, owner.ID)
	b := fixtures.CreateComponent(ctx, "B", models.TypeService, models.LayerApplication, project.ID, owner.ID)

	if _, err := validator.ValidateAndPrepare(ctx, a.ID, b.ID, models.RelationshipUses, "", owner.ID); err != nil {
		t.Fatalf("ValidateAndPrepare failed: %v", err)
	}

	rels, err := relationshipstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rels) != 0 {
		t.Errorf("prepare must not persist, found %d relationships", len(rels))
	}
}

func TestValidator_Create_DuplicatesAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	validator := newValidator(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)
	a := fixtures.CreateComponent(ctx, "A", models.TypeService, models.LayerApplication, project.ID, owner.ID)
	b := fixtures.CreateComponent(ctx, "B", models.TypeService, models.LayerApplication, project.ID, owner.ID)

	for i := 0; i < 2; i++ {
		if _, err := validator.Create(ctx, a.ID, b.ID, models.RelationshipDependsOn, "", owner.ID); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	rels, err := relationshipstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rels) != 2 {
		t.Errorf("duplicate edges should both persist, got %d", len(rels))
	}
}
