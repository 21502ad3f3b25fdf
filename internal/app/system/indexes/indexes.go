// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent
(CreateMany is a no-op for an index that already exists with the same
spec). We aggregate errors so any problem is visible and startup can
fail fast.

Two indexes are load-bearing for correctness, not just speed:
  - users.email unique: backend-level uniqueness for user emails
  - project_members (project_id, user_id) unique: one membership row
    per pair; duplicate inserts surface as duplicate-key errors that
    the membership guard translates to a Conflict
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureProjects(ctx, db); err != nil {
		problems = append(problems, "projects: "+err.Error())
	}
	if err := ensureComponents(ctx, db); err != nil {
		problems = append(problems, "components: "+err.Error())
	}
	if err := ensureRelationships(ctx, db); err != nil {
		problems = append(problems, "component_relationships: "+err.Error())
	}
	if err := ensureArtifacts(ctx, db); err != nil {
		problems = append(problems, "artifacts: "+err.Error())
	}
	if err := ensureProjectMembers(ctx, db); err != nil {
		problems = append(problems, "project_members: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_users_org"),
		},
	})
	return err
}

func ensureProjects(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("projects").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_projects_org"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_projects_creator"),
		},
	})
	return err
}

func ensureComponents(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("components").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_components_project_created"),
		},
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "layer", Value: 1}},
			Options: options.Index().SetName("idx_components_project_layer"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_components_creator"),
		},
	})
	return err
}

func ensureRelationships(ctx context.Context, db *mongo.Database) error {
	// No unique index on (source, target, type): duplicate edges are
	// allowed between the same ordered pair.
	_, err := db.Collection("component_relationships").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "source_component_id", Value: 1}},
			Options: options.Index().SetName("idx_rels_source"),
		},
		{
			Keys:    bson.D{{Key: "target_component_id", Value: 1}},
			Options: options.Index().SetName("idx_rels_target"),
		},
		{
			Keys:    bson.D{{Key: "created_by", Value: 1}},
			Options: options.Index().SetName("idx_rels_creator"),
		},
	})
	return err
}

func ensureArtifacts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("artifacts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_artifacts_project_created"),
		},
		{
			Keys:    bson.D{{Key: "component_id", Value: 1}},
			Options: options.Index().SetName("idx_artifacts_component"),
		},
		{
			Keys:    bson.D{{Key: "uploaded_by", Value: 1}},
			Options: options.Index().SetName("idx_artifacts_uploader"),
		},
	})
	return err
}

func ensureProjectMembers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("project_members").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_members_project_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_members_user"),
		},
		{
			Keys:    bson.D{{Key: "added_by", Value: 1}},
			Options: options.Index().SetName("idx_members_adder"),
		},
	})
	return err
}
