package organizations_test

import (
	"testing"
	"time"

	organizationstore "github.com/archhub/archhub/internal/app/store/organizations"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/archhub/archhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org, err := store.Create(ctx, models.Organization{
		Name:        "Acme",
		Description: "widgets",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if org.ID.IsZero() {
		t.Error("organization should be assigned an id")
	}
	if org.CreatedAt.IsZero() || org.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	got, err := store.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Acme" || got.Description != "widgets" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestGetByID_Absent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestUpdateInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Old Name")

	updated, err := store.UpdateInfo(ctx, org.ID, "New Name", "fresh description")
	if err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("Name: got %q, want %q", updated.Name, "New Name")
	}
	if updated.Description != "fresh description" {
		t.Errorf("Description: got %q, want %q", updated.Description, "fresh description")
	}
	// mongo stores timestamps at millisecond precision
	if updated.UpdatedAt.Before(org.UpdatedAt.Truncate(time.Millisecond)) {
		t.Error("UpdatedAt should advance")
	}
}

func TestUpdateInfo_Absent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.UpdateInfo(ctx, primitive.NewObjectID(), "Name", "")
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateOrganization(ctx, "Org A")
	fixtures.CreateOrganization(ctx, "Org B")

	orgs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orgs) != 2 {
		t.Errorf("got %d organizations, want 2", len(orgs))
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Doomed")

	n, err := store.Delete(ctx, org.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("DeletedCount: got %d, want 1", n)
	}

	n, err = store.Delete(ctx, org.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("DeletedCount on absent id: got %d, want 0", n)
	}
}
