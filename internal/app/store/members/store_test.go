package members_test

import (
	"errors"
	"testing"

	memberstore "github.com/archhub/archhub/internal/app/store/members"
	"github.com/archhub/archhub/internal/app/system/indexes"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/archhub/archhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Add(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	user := fixtures.CreateUser(ctx, "New Member", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	m, err := store.Add(ctx, models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      models.MemberRoleEditor,
		AddedBy:   owner.ID,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if m.ID.IsZero() {
		t.Error("expected assigned ID")
	}
	if m.Role != models.MemberRoleEditor {
		t.Errorf("Role: got %q, want %q", m.Role, models.MemberRoleEditor)
	}

	count := fixtures.Count(ctx, "project_members", bson.M{
		"project_id": project.ID,
		"user_id":    user.ID,
	})
	if count != 1 {
		t.Errorf("expected 1 membership, got %d", count)
	}
}

func TestStore_Add_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	user := fixtures.CreateUser(ctx, "Member", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	first := models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      models.MemberRoleViewer,
		AddedBy:   owner.ID,
	}
	if _, err := store.Add(ctx, first); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	_, err := store.Add(ctx, first)
	if !errors.Is(err, memberstore.ErrDuplicateMembership) {
		t.Errorf("expected ErrDuplicateMembership, got %v", err)
	}
}

func TestStore_Get(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)
	fixtures.CreateMember(ctx, project.ID, owner.ID, models.MemberRoleOwner, owner.ID)

	m, err := store.Get(ctx, project.ID, owner.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if m.Role != models.MemberRoleOwner {
		t.Errorf("Role: got %q, want %q", m.Role, models.MemberRoleOwner)
	}

	_, err = store.Get(ctx, project.ID, org.ID)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for absent pair, got %v", err)
	}
}

func TestStore_UpdateRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	user := fixtures.CreateUser(ctx, "Member", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)
	m := fixtures.CreateMember(ctx, project.ID, user.ID, models.MemberRoleViewer, owner.ID)

	updated, err := store.UpdateRole(ctx, m.ID, models.MemberRoleEditor)
	if err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if updated.Role != models.MemberRoleEditor {
		t.Errorf("Role: got %q, want %q", updated.Role, models.MemberRoleEditor)
	}
}

func TestStore_CountOwners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	ownerA := fixtures.CreateUser(ctx, "Owner A", models.UserRoleMember, &org.ID)
	ownerB := fixtures.CreateUser(ctx, "Owner B", models.UserRoleMember, &org.ID)
	viewer := fixtures.CreateUser(ctx, "Viewer", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, ownerA.ID)

	fixtures.CreateMember(ctx, project.ID, ownerA.ID, models.MemberRoleOwner, ownerA.ID)
	fixtures.CreateMember(ctx, project.ID, ownerB.ID, models.MemberRoleOwner, ownerA.ID)
	fixtures.CreateMember(ctx, project.ID, viewer.ID, models.MemberRoleViewer, ownerA.ID)

	count, err := store.CountOwners(ctx, project.ID)
	if err != nil {
		t.Fatalf("CountOwners failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 owners, got %d", count)
	}
}

func TestStore_CountByUserOrAdder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	user := fixtures.CreateUser(ctx, "Member", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	// owner appears as member once and as adder twice
	fixtures.CreateMember(ctx, project.ID, owner.ID, models.MemberRoleOwner, owner.ID)
	fixtures.CreateMember(ctx, project.ID, user.ID, models.MemberRoleViewer, owner.ID)

	count, err := store.CountByUserOrAdder(ctx, owner.ID)
	if err != nil {
		t.Fatalf("CountByUserOrAdder failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}

	count, err = store.CountByUserOrAdder(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountByUserOrAdder failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestStore_DeleteByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	user := fixtures.CreateUser(ctx, "Member", models.UserRoleMember, &org.ID)
	projectA := fixtures.CreateProject(ctx, "Project A", org.ID, owner.ID)
	projectB := fixtures.CreateProject(ctx, "Project B", org.ID, owner.ID)

	fixtures.CreateMember(ctx, projectA.ID, owner.ID, models.MemberRoleOwner, owner.ID)
	fixtures.CreateMember(ctx, projectA.ID, user.ID, models.MemberRoleViewer, owner.ID)
	fixtures.CreateMember(ctx, projectB.ID, owner.ID, models.MemberRoleOwner, owner.ID)

	deleted, err := store.DeleteByProject(ctx, projectA.ID)
	if err != nil {
		t.Fatalf("DeleteByProject failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}
	if n := fixtures.Count(ctx, "project_members", bson.M{"project_id": projectB.ID}); n != 1 {
		t.Errorf("other project memberships should survive, got %d", n)
	}
}
