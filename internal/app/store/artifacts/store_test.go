package artifacts_test

import (
	"testing"
	"time"

	artifactstore "github.com/archhub/archhub/internal/app/store/artifacts"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/archhub/archhub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := artifactstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	art, err := store.Create(ctx, models.Artifact{
		Name:       "Context Diagram",
		FilePath:   "artifacts/2026/08/diagram.png",
		FileType:   "image/png",
		FileSize:   2048,
		ProjectID:  project.ID,
		UploadedBy: owner.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if art.ID.IsZero() {
		t.Error("expected assigned ID")
	}
	if !art.HasFile() {
		t.Error("expected HasFile to be true")
	}
}

func TestStore_ListByComponent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := artifactstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)
	comp := fixtures.CreateComponent(ctx, "Svc", models.TypeService, models.LayerApplication, project.ID, owner.ID)

	fixtures.CreateArtifact(ctx, "Linked", project.ID, &comp.ID, owner.ID)
	fixtures.CreateArtifact(ctx, "Unlinked", project.ID, nil, owner.ID)

	arts, err := store.ListByComponent(ctx, comp.ID)
	if err != nil {
		t.Fatalf("ListByComponent failed: %v", err)
	}
	if len(arts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(arts))
	}
	if arts[0].Name != "Linked" {
		t.Errorf("Name: got %q, want %q", arts[0].Name, "Linked")
	}
}

func TestStore_ListRecentByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := artifactstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	owner := fixtures.CreateUser(ctx, "Owner", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, owner.ID)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 6; i++ {
		fixtures.CreateArtifactAt(ctx, "Doc", project.ID, owner.ID, base.Add(time.Duration(i)*time.Minute))
	}

	arts, err := store.ListRecentByProject(ctx, project.ID, 5)
	if err != nil {
		t.Fatalf("ListRecentByProject failed: %v", err)
	}
	if len(arts) != 5 {
		t.Fatalf("expected 5 artifacts, got %d", len(arts))
	}
	for i := 1; i < len(arts); i++ {
		if arts[i].CreatedAt.After(arts[i-1].CreatedAt) {
			t.Error("expected newest-first order")
		}
	}
}

func TestStore_CountByUploader(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := artifactstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")
	uploader := fixtures.CreateUser(ctx, "Uploader", models.UserRoleMember, &org.ID)
	other := fixtures.CreateUser(ctx, "Other", models.UserRoleMember, &org.ID)
	project := fixtures.CreateProject(ctx, "Test Project", org.ID, uploader.ID)

	fixtures.CreateArtifact(ctx, "One", project.ID, nil, uploader.ID)
	fixtures.CreateArtifact(ctx, "Two", project.ID, nil, uploader.ID)
	fixtures.CreateArtifact(ctx, "Theirs", project.ID, nil, other.ID)

	count, err := store.CountByUploader(ctx, uploader.ID)
	if err != nil {
		t.Fatalf("CountByUploader failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}
