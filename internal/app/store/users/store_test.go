package users_test

import (
	"errors"
	"testing"

	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/archhub/archhub/internal/app/system/indexes"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/archhub/archhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		Email: testutil.UniqueEmail("create"),
		Name:  "Test User",
		Role:  models.UserRoleMember,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.ID.IsZero() {
		t.Error("expected assigned ID")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	email := testutil.UniqueEmail("dup")
	if _, err := store.Create(ctx, models.User{Email: email, Name: "First", Role: models.UserRoleMember}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{Email: email, Name: "Second", Role: models.UserRoleMember})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Update_Whitelist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	u := fixtures.CreateUser(ctx, "Before", models.UserRoleMember, &org.ID)

	newName := "After"
	newRole := models.UserRoleAdmin
	updated, err := store.Update(ctx, u.ID, userstore.UpdateFields{
		Name: &newName,
		Role: &newRole,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("Name: got %q, want %q", updated.Name, "After")
	}
	if updated.Role != models.UserRoleAdmin {
		t.Errorf("Role: got %q, want %q", updated.Role, models.UserRoleAdmin)
	}
	if updated.Email != u.Email {
		t.Errorf("Email should be untouched, got %q", updated.Email)
	}
	if updated.OrganizationID == nil || *updated.OrganizationID != org.ID {
		t.Error("OrganizationID should be untouched")
	}
}

func TestStore_Update_ClearOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	u := fixtures.CreateUser(ctx, "Assigned", models.UserRoleMember, &org.ID)

	var cleared *primitive.ObjectID
	updated, err := store.Update(ctx, u.ID, userstore.UpdateFields{
		OrganizationID: &cleared,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.OrganizationID != nil {
		t.Errorf("expected organization cleared, got %v", updated.OrganizationID)
	}
}

func TestStore_ListByOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	fixtures.CreateUser(ctx, "A1", models.UserRoleMember, &orgA.ID)
	fixtures.CreateUser(ctx, "A2", models.UserRoleMember, &orgA.ID)
	fixtures.CreateUser(ctx, "B1", models.UserRoleMember, &orgB.ID)
	fixtures.CreateUser(ctx, "Unassigned", models.UserRoleMember, nil)

	users, err := store.ListByOrganization(ctx, orgA.ID)
	if err != nil {
		t.Fatalf("ListByOrganization failed: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestStore_DeleteByOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	fixtures.CreateUser(ctx, "Member 1", models.UserRoleMember, &org.ID)
	fixtures.CreateUser(ctx, "Member 2", models.UserRoleMember, &org.ID)
	outsider := fixtures.CreateUser(ctx, "Outsider", models.UserRoleMember, nil)

	deleted, err := store.DeleteByOrganization(ctx, org.ID)
	if err != nil {
		t.Fatalf("DeleteByOrganization failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}
	if _, err := store.GetByID(ctx, outsider.ID); err != nil {
		t.Errorf("outsider should survive: %v", err)
	}
}
