// internal/app/features/relationships/handler.go
package relationships

import (
	"context"
	"net/http"

	"github.com/archhub/archhub/internal/app/graph/cascade"
	graphrels "github.com/archhub/archhub/internal/app/graph/relationships"
	componentstore "github.com/archhub/archhub/internal/app/store/components"
	relationshipstore "github.com/archhub/archhub/internal/app/store/relationships"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the relationship endpoints. Creation goes through the
// validator; deletion through the cascade orchestrator.
type Handler struct {
	DB        *mongo.Database
	Validator *graphrels.Validator
	Cascade   *cascade.Orchestrator
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, validator *graphrels.Validator, orchestrator *cascade.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Validator: validator, Cascade: orchestrator, Log: logger}
}

type createRequest struct {
	SourceComponentID string `json:"source_component_id"`
	TargetComponentID string `json:"target_component_id"`
	RelationshipType  string `json:"relationship_type"`
	Description       string `json:"description,omitempty"`
	CreatedBy         string `json:"created_by"`
}

// ServeCreate handles POST /api/relationships.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}
	sourceID, err := httpapi.ParseID(req.SourceComponentID)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid source component ID")
		return
	}
	targetID, err := httpapi.ParseID(req.TargetComponentID)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid target component ID")
		return
	}
	creatorID, err := httpapi.ParseID(req.CreatedBy)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid creator ID")
		return
	}

	rel, err := h.Validator.Create(ctx, sourceID, targetID, req.RelationshipType, req.Description, creatorID)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, rel)
}

// ServeList handles GET /api/relationships, optionally filtered with
// the component_id query parameter (either end) or project_id
// (relationships whose source component is in the project).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := relationshipstore.New(h.DB)
	if hex := r.URL.Query().Get("component_id"); hex != "" {
		cid, err := httpapi.ParseID(hex)
		if err != nil {
			httpapi.WriteBadRequest(w, "invalid component ID")
			return
		}
		rels, err := store.ListByComponent(ctx, cid)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, rels)
		return
	}
	if hex := r.URL.Query().Get("project_id"); hex != "" {
		pid, err := httpapi.ParseID(hex)
		if err != nil {
			httpapi.WriteBadRequest(w, "invalid project ID")
			return
		}
		compIDs, err := componentstore.New(h.DB).IDsByProject(ctx, pid)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		rels, err := store.ListBySourceIn(ctx, compIDs)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, rels)
		return
	}

	rels, err := store.List(ctx)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rels)
}

// ServeGet handles GET /api/relationships/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid relationship ID")
		return
	}

	rel, err := relationshipstore.New(h.DB).GetByID(ctx, rid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rel)
}

// ServeDelete handles DELETE /api/relationships/{id}. Absent ids are a
// no-op.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid relationship ID")
		return
	}

	if err := h.Cascade.DeleteRelationship(ctx, rid); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
