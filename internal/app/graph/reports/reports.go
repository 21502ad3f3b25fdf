// internal/app/graph/reports/reports.go
//
// Package reports computes rollups over a project's component graph:
// component and relationship frequency reports and the project
// dashboard with its recent-activity feed.
package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	artifactstore "github.com/archhub/archhub/internal/app/store/artifacts"
	componentstore "github.com/archhub/archhub/internal/app/store/components"
	projectstore "github.com/archhub/archhub/internal/app/store/projects"
	relationshipstore "github.com/archhub/archhub/internal/app/store/relationships"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const recentPerKind = 5
const recentTotal = 10

// Activity kinds in the dashboard feed.
const (
	ActivityComponentCreated = "component_created"
	ActivityArtifactUploaded = "artifact_uploaded"
)

type Engine struct {
	projects      *projectstore.Store
	components    *componentstore.Store
	relationships *relationshipstore.Store
	artifacts     *artifactstore.Store
}

func New(projects *projectstore.Store, components *componentstore.Store, rels *relationshipstore.Store, artifacts *artifactstore.Store) *Engine {
	return &Engine{projects: projects, components: components, relationships: rels, artifacts: artifacts}
}

// ComponentSummary is a frequency rollup over a component list. The
// maps are sparse: a layer or type with no components has no key.
type ComponentSummary struct {
	Total   int            `json:"total"`
	ByLayer map[string]int `json:"by_layer"`
	ByType  map[string]int `json:"by_type"`
}

type ComponentReport struct {
	Components []models.Component `json:"components"`
	Summary    ComponentSummary   `json:"summary"`
}

func (e *Engine) ComponentReport(ctx context.Context, projectID primitive.ObjectID) (ComponentReport, error) {
	if err := e.requireProject(ctx, projectID); err != nil {
		return ComponentReport{}, err
	}
	comps, err := e.components.ListByProject(ctx, projectID)
	if err != nil {
		return ComponentReport{}, err
	}

	summary := ComponentSummary{
		Total:   len(comps),
		ByLayer: map[string]int{},
		ByType:  map[string]int{},
	}
	for _, c := range comps {
		summary.ByLayer[c.Layer]++
		summary.ByType[c.Type]++
	}
	return ComponentReport{Components: comps, Summary: summary}, nil
}

type RelationshipSummary struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

type RelationshipReport struct {
	Relationships []models.ComponentRelationship `json:"relationships"`
	Summary       RelationshipSummary            `json:"summary"`
}

// RelationshipReport reports the relationships of a project. A
// relationship counts only when both its source and target still
// resolve to the project, which keeps the report honest if a component
// set drifted after edges were created.
func (e *Engine) RelationshipReport(ctx context.Context, projectID primitive.ObjectID) (RelationshipReport, error) {
	if err := e.requireProject(ctx, projectID); err != nil {
		return RelationshipReport{}, err
	}
	compIDs, err := e.components.IDsByProject(ctx, projectID)
	if err != nil {
		return RelationshipReport{}, err
	}
	inProject := make(map[primitive.ObjectID]bool, len(compIDs))
	for _, id := range compIDs {
		inProject[id] = true
	}

	all, err := e.relationships.ListBySourceIn(ctx, compIDs)
	if err != nil {
		return RelationshipReport{}, err
	}

	summary := RelationshipSummary{ByType: map[string]int{}}
	rels := []models.ComponentRelationship{}
	for _, r := range all {
		if !inProject[r.TargetComponentID] {
			continue
		}
		rels = append(rels, r)
		summary.Total++
		summary.ByType[r.RelationshipType]++
	}
	return RelationshipReport{Relationships: rels, Summary: summary}, nil
}

// ActivityEntry is one row of the dashboard recent-activity feed.
type ActivityEntry struct {
	Kind        string             `json:"kind"` // component_created | artifact_uploaded
	EntityID    primitive.ObjectID `json:"entity_id"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
}

type Dashboard struct {
	ProjectID          primitive.ObjectID `json:"project_id"`
	TotalComponents    int64              `json:"total_components"`
	ComponentsByLayer  map[string]int64   `json:"components_by_layer"`
	TotalRelationships int64              `json:"total_relationships"`
	TotalArtifacts     int64              `json:"total_artifacts"`
	RecentActivity     []ActivityEntry    `json:"recent_activity"`
}

// Dashboard builds the project overview. Unlike ComponentReport the
// layer map is dense: every known layer is present, absent ones at
// zero. Relationships are counted by source end only, so an edge
// between two project components counts once.
func (e *Engine) Dashboard(ctx context.Context, projectID primitive.ObjectID) (Dashboard, error) {
	if err := e.requireProject(ctx, projectID); err != nil {
		return Dashboard{}, err
	}

	comps, err := e.components.ListByProject(ctx, projectID)
	if err != nil {
		return Dashboard{}, err
	}
	byLayer := make(map[string]int64, len(models.ComponentLayers))
	for _, layer := range models.ComponentLayers {
		byLayer[layer] = 0
	}
	compIDs := make([]primitive.ObjectID, 0, len(comps))
	for _, c := range comps {
		byLayer[c.Layer]++
		compIDs = append(compIDs, c.ID)
	}

	totalRels, err := e.relationships.CountBySourceIn(ctx, compIDs)
	if err != nil {
		return Dashboard{}, err
	}
	totalArts, err := e.artifacts.CountByProject(ctx, projectID)
	if err != nil {
		return Dashboard{}, err
	}

	activity, err := e.recentActivity(ctx, projectID)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		ProjectID:          projectID,
		TotalComponents:    int64(len(comps)),
		ComponentsByLayer:  byLayer,
		TotalRelationships: totalRels,
		TotalArtifacts:     totalArts,
		RecentActivity:     activity,
	}, nil
}

// recentActivity merges the newest components and artifacts into one
// descending feed. Equal timestamps order entries by kind, then by id,
// so the feed is stable across runs.
func (e *Engine) recentActivity(ctx context.Context, projectID primitive.ObjectID) ([]ActivityEntry, error) {
	comps, err := e.components.ListRecentByProject(ctx, projectID, recentPerKind)
	if err != nil {
		return nil, err
	}
	arts, err := e.artifacts.ListRecentByProject(ctx, projectID, recentPerKind)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(comps)+len(arts))
	for _, c := range comps {
		entries = append(entries, ActivityEntry{
			Kind:        ActivityComponentCreated,
			EntityID:    c.ID,
			Description: fmt.Sprintf("Component %q was created", c.Name),
			CreatedAt:   c.CreatedAt,
		})
	}
	for _, a := range arts {
		entries = append(entries, ActivityEntry{
			Kind:        ActivityArtifactUploaded,
			EntityID:    a.ID,
			Description: fmt.Sprintf("Artifact %q was uploaded", a.Name),
			CreatedAt:   a.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.EntityID.Hex() < b.EntityID.Hex()
	})

	if len(entries) > recentTotal {
		entries = entries[:recentTotal]
	}
	return entries, nil
}

func (e *Engine) requireProject(ctx context.Context, projectID primitive.ObjectID) error {
	if _, err := e.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("project", projectID.Hex())
		}
		return err
	}
	return nil
}
