package components_test

import (
	"testing"
	"time"

	componentstore "github.com/archhub/archhub/internal/app/store/components"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/archhub/archhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := componentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	comp, err := store.Create(ctx, models.Component{
		Name:      "Order Service",
		Type:      models.TypeService,
		Layer:     models.LayerApplication,
		ProjectID: project.ID,
		CreatedBy: owner.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if comp.ID.IsZero() {
		t.Error("expected assigned ID")
	}
	if comp.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := componentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)
	comp := fixtures.CreateComponent(ctx, "Before", models.TypeService, models.LayerApplication, project.ID, owner.ID)

	newName := "After"
	newMeta := `{"owner":"platform"}`
	updated, err := store.Update(ctx, comp.ID, componentstore.UpdateFields{
		Name:     &newName,
		Metadata: &newMeta,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("Name: got %q, want %q", updated.Name, "After")
	}
	if updated.Metadata != newMeta {
		t.Errorf("Metadata: got %q, want %q", updated.Metadata, newMeta)
	}
	if updated.Type != comp.Type || updated.Layer != comp.Layer {
		t.Error("type and layer should be untouched")
	}
}

func TestStore_ListByLayer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := componentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	fixtures.CreateComponent(ctx, "App", models.TypeApplication, models.LayerApplication, project.ID, owner.ID)
	fixtures.CreateComponent(ctx, "Svc", models.TypeService, models.LayerApplication, project.ID, owner.ID)
	fixtures.CreateComponent(ctx, "Entity", models.TypeDataEntity, models.LayerData, project.ID, owner.ID)

	comps, err := store.ListByLayer(ctx, project.ID, models.LayerApplication)
	if err != nil {
		t.Fatalf("ListByLayer failed: %v", err)
	}
	if len(comps) != 2 {
		t.Errorf("expected 2 application components, got %d", len(comps))
	}
}

func TestStore_ListRecentByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := componentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		fixtures.CreateComponentAt(ctx, "Comp", models.TypeService, models.LayerApplication,
			project.ID, owner.ID, base.Add(time.Duration(i)*time.Minute))
	}

	comps, err := store.ListRecentByProject(ctx, project.ID, 5)
	if err != nil {
		t.Fatalf("ListRecentByProject failed: %v", err)
	}
	if len(comps) != 5 {
		t.Fatalf("expected 5 components, got %d", len(comps))
	}
	for i := 1; i < len(comps); i++ {
		if comps[i].CreatedAt.After(comps[i-1].CreatedAt) {
			t.Error("expected newest-first order")
		}
	}
}

func TestStore_IDsByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := componentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	projectA := fixtures.CreateProject(ctx, "Project A", org.ID, owner.ID)
	projectB := fixtures.CreateProject(ctx, "Project B", org.ID, owner.ID)

	a := fixtures.CreateComponent(ctx, "A", models.TypeService, models.LayerApplication, projectA.ID, owner.ID)
	b := fixtures.CreateComponent(ctx, "B", models.TypeService, models.LayerApplication, projectA.ID, owner.ID)
	fixtures.CreateComponent(ctx, "Other", models.TypeService, models.LayerApplication, projectB.ID, owner.ID)

	ids, err := store.IDsByProject(ctx, projectA.ID)
	if err != nil {
		t.Fatalf("IDsByProject failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	found := map[string]bool{a.ID.Hex(): false, b.ID.Hex(): false}
	for _, id := range ids {
		found[id.Hex()] = true
	}
	for hex, ok := range found {
		if !ok {
			t.Errorf("missing id %s", hex)
		}
	}
}

func TestStore_DeleteByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := componentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	projectA := fixtures.CreateProject(ctx, "Project A", org.ID, owner.ID)
	projectB := fixtures.CreateProject(ctx, "Project B", org.ID, owner.ID)

	fixtures.CreateComponent(ctx, "A1", models.TypeService, models.LayerApplication, projectA.ID, owner.ID)
	fixtures.CreateComponent(ctx, "A2", models.TypeService, models.LayerApplication, projectA.ID, owner.ID)
	fixtures.CreateComponent(ctx, "B1", models.TypeService, models.LayerApplication, projectB.ID, owner.ID)

	deleted, err := store.DeleteByProject(ctx, projectA.ID)
	if err != nil {
		t.Fatalf("DeleteByProject failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}
	if n := fixtures.Count(ctx, "components", bson.M{"project_id": projectB.ID}); n != 1 {
		t.Errorf("other project components should survive, got %d", n)
	}
}
