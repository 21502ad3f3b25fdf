// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/archhub/archhub/internal/app/graph/cascade"
	"github.com/archhub/archhub/internal/app/graph/reports"
	memberstore "github.com/archhub/archhub/internal/app/store/members"
	projectstore "github.com/archhub/archhub/internal/app/store/projects"
	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/archhub/archhub/internal/app/system/txn"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the project endpoints.
type Handler struct {
	DB      *mongo.Database
	Cascade *cascade.Orchestrator
	Reports *reports.Engine
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, orchestrator *cascade.Orchestrator, engine *reports.Engine, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Cascade: orchestrator, Reports: engine, Log: logger}
}

type createRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	OrganizationID string `json:"organization_id"`
	CreatedBy      string `json:"created_by"`
	Status         string `json:"status,omitempty"`
}

type updateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ServeCreate handles POST /api/projects. The project row and the
// creator's owner membership are inserted in one transaction; a project
// never exists without its initial owner.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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
	orgID, err := httpapi.ParseID(req.OrganizationID)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid organization ID")
		return
	}
	creatorID, err := httpapi.ParseID(req.CreatedBy)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid creator ID")
		return
	}
	if req.Status != "" && !models.ValidProjectStatus(req.Status) {
		httpapi.WriteBadRequest(w, "unknown project status")
		return
	}

	if _, err := userstore.New(h.DB).GetByID(ctx, creatorID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.WriteError(w, h.Log, apperr.NotFound("user", creatorID.Hex()))
			return
		}
		httpapi.WriteError(w, h.Log, err)
		return
	}

	var created models.Project
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		p, err := projectstore.New(h.DB).Create(ctx, models.Project{
			Name:           req.Name,
			Description:    req.Description,
			OrganizationID: orgID,
			CreatedBy:      creatorID,
			Status:         req.Status,
		})
		if err != nil {
			return err
		}
		if _, err := memberstore.New(h.DB).Add(ctx, models.ProjectMember{
			ProjectID: p.ID,
			UserID:    creatorID,
			Role:      models.MemberRoleOwner,
			AddedBy:   creatorID,
		}); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// ServeList handles GET /api/projects, optionally filtered with the
// organization_id query parameter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := projectstore.New(h.DB)
	if hex := r.URL.Query().Get("organization_id"); hex != "" {
		orgID, err := httpapi.ParseID(hex)
		if err != nil {
			httpapi.WriteBadRequest(w, "invalid organization ID")
			return
		}
		ps, err := store.ListByOrganization(ctx, orgID)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, ps)
		return
	}

	ps, err := store.List(ctx)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, ps)
}

// ServeListByUser handles GET /api/projects/by-user/{userID}: the
// projects a user belongs to, resolved through memberships.
func (h *Handler) ServeListByUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	uid, err := httpapi.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid user ID")
		return
	}

	memberships, err := memberstore.New(h.DB).ListByUser(ctx, uid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ProjectID)
	}

	ps, err := projectstore.New(h.DB).ListByIDs(ctx, ids)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	if ps == nil {
		ps = []models.Project{}
	}
	httpapi.WriteJSON(w, http.StatusOK, ps)
}

// ServeGet handles GET /api/projects/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}

	p, err := projectstore.New(h.DB).GetByID(ctx, pid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, p)
}

// ServeUpdate handles PUT /api/projects/{id}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
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
	if !models.ValidProjectStatus(req.Status) {
		httpapi.WriteBadRequest(w, "unknown project status")
		return
	}

	p, err := projectstore.New(h.DB).UpdateInfo(ctx, pid, req.Name, req.Description, req.Status)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, p)
}

// ServeDashboard handles GET /api/projects/{id}/dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}

	dash, err := h.Reports.Dashboard(ctx, pid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, dash)
}

// ServeDelete handles DELETE /api/projects/{id}: the full project
// cascade.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}

	if err := h.Cascade.DeleteProject(ctx, pid); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
