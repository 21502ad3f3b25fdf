// internal/app/features/components/handler.go
package components

import (
	"context"
	"errors"
	"net/http"

	"github.com/archhub/archhub/internal/app/graph/cascade"
	componentstore "github.com/archhub/archhub/internal/app/store/components"
	projectstore "github.com/archhub/archhub/internal/app/store/projects"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the component endpoints.
type Handler struct {
	DB      *mongo.Database
	Cascade *cascade.Orchestrator
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, orchestrator *cascade.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Cascade: orchestrator, Log: logger}
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Layer       string `json:"layer"`
	ProjectID   string `json:"project_id"`
	CreatedBy   string `json:"created_by"`
	Metadata    string `json:"metadata,omitempty"`
}

type updateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Layer       *string `json:"layer,omitempty"`
	Metadata    *string `json:"metadata,omitempty"`
}

// ServeCreate handles POST /api/components. The type must belong to the
// set valid for the layer.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		httpapi.WriteBadRequest(w, "name is required")
		return
	}
	pid, err := httpapi.ParseID(req.ProjectID)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}
	creatorID, err := httpapi.ParseID(req.CreatedBy)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid creator ID")
		return
	}
	if err := validateTypeLayer(req.Type, req.Layer); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}

	if _, err := projectstore.New(h.DB).GetByID(ctx, pid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.WriteError(w, h.Log, apperr.NotFound("project", pid.Hex()))
			return
		}
		httpapi.WriteError(w, h.Log, err)
		return
	}

	comp, err := componentstore.New(h.DB).Create(ctx, models.Component{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Layer:       req.Layer,
		ProjectID:   pid,
		CreatedBy:   creatorID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, comp)
}

// ServeList handles GET /api/components filtered by project_id and
// optionally layer.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := componentstore.New(h.DB)

	hex := r.URL.Query().Get("project_id")
	if hex == "" {
		comps, err := store.List(ctx)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, comps)
		return
	}
	pid, err := httpapi.ParseID(hex)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}

	if layer := r.URL.Query().Get("layer"); layer != "" {
		if !models.ValidLayer(layer) {
			httpapi.WriteBadRequest(w, "unknown layer")
			return
		}
		comps, err := store.ListByLayer(ctx, pid, layer)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, comps)
		return
	}

	comps, err := store.ListByProject(ctx, pid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, comps)
}

// ServeGet handles GET /api/components/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid component ID")
		return
	}

	comp, err := componentstore.New(h.DB).GetByID(ctx, cid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, comp)
}

// ServeUpdate handles PUT /api/components/{id}. A type or layer change
// is validated against the resulting (type, layer) pair, not just the
// changed field.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid component ID")
		return
	}

	var req updateRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}

	store := componentstore.New(h.DB)
	if req.Type != nil || req.Layer != nil {
		existing, err := store.GetByID(ctx, cid)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		newType, newLayer := existing.Type, existing.Layer
		if req.Type != nil {
			newType = *req.Type
		}
		if req.Layer != nil {
			newLayer = *req.Layer
		}
		if err := validateTypeLayer(newType, newLayer); err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
	}

	comp, err := store.Update(ctx, cid, componentstore.UpdateFields{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Layer:       req.Layer,
		Metadata:    req.Metadata,
	})
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, comp)
}

// ServeDelete handles DELETE /api/components/{id}: removes the
// component with its relationships and linked artifacts.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid component ID")
		return
	}

	if err := h.Cascade.DeleteComponent(ctx, cid); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateTypeLayer(typ, layer string) error {
	if !models.ValidLayer(layer) {
		return apperr.Validation("layer", "unknown layer %q", layer)
	}
	if !models.ValidTypeForLayer(layer, typ) {
		return apperr.Validation("type", "type %q is not valid for layer %q", typ, layer)
	}
	return nil
}
