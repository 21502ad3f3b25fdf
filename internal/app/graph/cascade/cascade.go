// internal/app/graph/cascade/cascade.go
//
// Package cascade executes ordered deletion plans across the component,
// relationship, artifact, and membership graph. Row deletions for a
// plan run inside a single transaction via txn.Run; backing-file
// removal for artifacts happens after commit and is best effort, logged
// and never propagated.
package cascade

import (
	"context"
	"errors"

	artifactstore "github.com/archhub/archhub/internal/app/store/artifacts"
	componentstore "github.com/archhub/archhub/internal/app/store/components"
	memberstore "github.com/archhub/archhub/internal/app/store/members"
	organizationstore "github.com/archhub/archhub/internal/app/store/organizations"
	projectstore "github.com/archhub/archhub/internal/app/store/projects"
	relationshipstore "github.com/archhub/archhub/internal/app/store/relationships"
	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/app/system/txn"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Orchestrator runs the deletion plans. All stores share one database;
// Files may be nil when no artifact storage is configured, in which
// case backing files are left behind.
type Orchestrator struct {
	DB            *mongo.Database
	Organizations *organizationstore.Store
	Users         *userstore.Store
	Projects      *projectstore.Store
	Components    *componentstore.Store
	Relationships *relationshipstore.Store
	Artifacts     *artifactstore.Store
	Members       *memberstore.Store
	Files         storage.Store
	Log           *zap.Logger
}

func New(db *mongo.Database, files storage.Store, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		DB:            db,
		Organizations: organizationstore.New(db),
		Users:         userstore.New(db),
		Projects:      projectstore.New(db),
		Components:    componentstore.New(db),
		Relationships: relationshipstore.New(db),
		Artifacts:     artifactstore.New(db),
		Members:       memberstore.New(db),
		Files:         files,
		Log:           log,
	}
}

// DeleteComponent removes a component with its relationships (either
// end) and linked artifacts. Deleting an absent component is a no-op.
func (o *Orchestrator) DeleteComponent(ctx context.Context, id primitive.ObjectID) error {
	// Capture linked artifacts first so their files can be cleaned up
	// after the rows are gone.
	arts, err := o.Artifacts.ListByComponent(ctx, id)
	if err != nil {
		return err
	}

	if err := txn.Run(ctx, o.DB, o.Log, func(ctx context.Context) error {
		if _, err := o.Relationships.DeleteByComponent(ctx, id); err != nil {
			return err
		}
		if _, err := o.Artifacts.DeleteByComponent(ctx, id); err != nil {
			return err
		}
		_, err := o.Components.Delete(ctx, id)
		return err
	}); err != nil {
		return err
	}

	o.removeFiles(ctx, arts)
	return nil
}

// DeleteProject removes a project with all of its components,
// relationships touching those components, artifacts, and memberships.
// Deleting an absent project is a no-op.
func (o *Orchestrator) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	arts, err := o.Artifacts.ListByProject(ctx, id)
	if err != nil {
		return err
	}

	if err := txn.Run(ctx, o.DB, o.Log, func(ctx context.Context) error {
		if err := o.deleteProjectRows(ctx, id); err != nil {
			return err
		}
		_, err := o.Projects.Delete(ctx, id)
		return err
	}); err != nil {
		return err
	}

	o.removeFiles(ctx, arts)
	return nil
}

// DeleteOrganization removes an organization with every project under
// it (full project cascade each), then every user assigned to it, then
// the organization row. Deleting an absent organization is a no-op.
func (o *Orchestrator) DeleteOrganization(ctx context.Context, id primitive.ObjectID) error {
	projects, err := o.Projects.ListByOrganization(ctx, id)
	if err != nil {
		return err
	}
	var arts []models.Artifact
	for _, p := range projects {
		pa, err := o.Artifacts.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		arts = append(arts, pa...)
	}

	if err := txn.Run(ctx, o.DB, o.Log, func(ctx context.Context) error {
		for _, p := range projects {
			if err := o.deleteProjectRows(ctx, p.ID); err != nil {
				return err
			}
			if _, err := o.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
		}
		if _, err := o.Users.DeleteByOrganization(ctx, id); err != nil {
			return err
		}
		_, err := o.Organizations.Delete(ctx, id)
		return err
	}); err != nil {
		return err
	}

	o.removeFiles(ctx, arts)
	return nil
}

// DeleteArtifact removes an artifact row, then its backing file (best
// effort). Unlike the other plans this one requires the target to
// exist.
func (o *Orchestrator) DeleteArtifact(ctx context.Context, id primitive.ObjectID) error {
	art, err := o.Artifacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("artifact", id.Hex())
		}
		return err
	}

	if _, err := o.Artifacts.Delete(ctx, id); err != nil {
		return err
	}

	o.removeFiles(ctx, []models.Artifact{art})
	return nil
}

// DeleteRelationship removes a relationship row. Absent ids are a
// no-op.
func (o *Orchestrator) DeleteRelationship(ctx context.Context, id primitive.ObjectID) error {
	_, err := o.Relationships.Delete(ctx, id)
	return err
}

// DeleteUser is a guard rather than a cascade: a user that still
// appears anywhere in the graph, in any attribution role, cannot be
// deleted. Checks run in a fixed order and the first blocking category
// is reported. Cascading here would destroy provenance, so the plan
// refuses instead.
func (o *Orchestrator) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if _, err := o.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("user", id.Hex())
		}
		return err
	}

	checks := []struct {
		category string
		count    func(context.Context, primitive.ObjectID) (int64, error)
	}{
		{"projects", o.Projects.CountByCreator},
		{"components", o.Components.CountByCreator},
		{"artifacts", o.Artifacts.CountByUploader},
		{"relationships", o.Relationships.CountByCreator},
		{"memberships", o.Members.CountByUserOrAdder},
	}
	for _, c := range checks {
		n, err := c.count(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.DependencyBlocked(c.category, n)
		}
	}

	_, err := o.Users.Delete(ctx, id)
	return err
}

// deleteProjectRows removes everything under a project except the
// project row itself. Callers run it inside a transaction.
func (o *Orchestrator) deleteProjectRows(ctx context.Context, projectID primitive.ObjectID) error {
	compIDs, err := o.Components.IDsByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := o.Relationships.DeleteByComponentIn(ctx, compIDs); err != nil {
		return err
	}
	if _, err := o.Artifacts.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := o.Members.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := o.Components.DeleteByProject(ctx, projectID); err != nil {
		return err
	}
	return nil
}

// removeFiles deletes artifact backing files from storage. Failures
// are logged and swallowed; the rows are already gone.
func (o *Orchestrator) removeFiles(ctx context.Context, arts []models.Artifact) {
	if o.Files == nil {
		return
	}
	for _, a := range arts {
		if !a.HasFile() {
			continue
		}
		if err := o.Files.Delete(ctx, a.FilePath); err != nil {
			o.Log.Warn("failed to delete artifact file",
				zap.String("artifact_id", a.ID.Hex()),
				zap.String("file_path", a.FilePath),
				zap.Error(err))
		}
	}
}
