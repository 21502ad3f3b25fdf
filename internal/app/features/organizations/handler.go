// internal/app/features/organizations/handler.go
package organizations

import (
	"context"
	"net/http"

	"github.com/archhub/archhub/internal/app/graph/cascade"
	organizationstore "github.com/archhub/archhub/internal/app/store/organizations"
	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the organization endpoints.
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
}

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServeCreate handles POST /api/organizations.
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

	org, err := organizationstore.New(h.DB).Create(ctx, models.Organization{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, org)
}

// ServeList handles GET /api/organizations.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	orgs, err := organizationstore.New(h.DB).List(ctx)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, orgs)
}

// ServeGet handles GET /api/organizations/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	oid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid organization ID")
		return
	}

	org, err := organizationstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, org)
}

// ServeUpdate handles PUT /api/organizations/{id}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	oid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid organization ID")
		return
	}

	var req updateRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		httpapi.WriteBadRequest(w, "name is required")
		return
	}

	org, err := organizationstore.New(h.DB).UpdateInfo(ctx, oid, req.Name, req.Description)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, org)
}

// ServeListUsers handles GET /api/organizations/{id}/users.
func (h *Handler) ServeListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	oid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid organization ID")
		return
	}

	users, err := userstore.New(h.DB).ListByOrganization(ctx, oid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, users)
}

// ServeDelete handles DELETE /api/organizations/{id}. The cascade
// removes every project under the organization and every user assigned
// to it.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	oid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid organization ID")
		return
	}

	if err := h.Cascade.DeleteOrganization(ctx, oid); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
