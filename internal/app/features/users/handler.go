// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/archhub/archhub/internal/app/graph/cascade"
	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the user endpoints. Deletion goes through the cascade
// orchestrator's guard rather than the store.
type Handler struct {
	DB      *mongo.Database
	Cascade *cascade.Orchestrator
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, orchestrator *cascade.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Cascade: orchestrator, Log: logger}
}

type createRequest struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
}

type updateRequest struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"`
	// OrganizationID distinguishes absent (leave alone), "" (clear), and
	// a hex id (reassign).
	OrganizationID *string `json:"organization_id,omitempty"`
}

// ServeCreate handles POST /api/users.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Name == "" {
		httpapi.WriteBadRequest(w, "email and name are required")
		return
	}
	if req.Role == "" {
		req.Role = models.UserRoleMember
	}
	if !models.ValidUserRole(req.Role) {
		httpapi.WriteBadRequest(w, "unknown user role")
		return
	}

	u := models.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}
	if req.OrganizationID != "" {
		oid, err := httpapi.ParseID(req.OrganizationID)
		if err != nil {
			httpapi.WriteBadRequest(w, "invalid organization ID")
			return
		}
		u.OrganizationID = &oid
	}

	created, err := userstore.New(h.DB).Create(ctx, u)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			err = apperr.Conflict(err.Error())
		}
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// ServeList handles GET /api/users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, users)
}

// ServeGet handles GET /api/users/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	uid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid user ID")
		return
	}

	u, err := userstore.New(h.DB).GetByID(ctx, uid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, u)
}

// ServeUpdate handles PUT /api/users/{id}.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	uid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid user ID")
		return
	}

	var req updateRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Role != nil && !models.ValidUserRole(*req.Role) {
		httpapi.WriteBadRequest(w, "unknown user role")
		return
	}

	fields := userstore.UpdateFields{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}
	if req.OrganizationID != nil {
		if *req.OrganizationID == "" {
			var cleared *primitive.ObjectID
			fields.OrganizationID = &cleared
		} else {
			oid, err := httpapi.ParseID(*req.OrganizationID)
			if err != nil {
				httpapi.WriteBadRequest(w, "invalid organization ID")
				return
			}
			p := &oid
			fields.OrganizationID = &p
		}
	}

	u, err := userstore.New(h.DB).Update(ctx, uid, fields)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			err = apperr.Conflict(err.Error())
		}
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, u)
}

// ServeDelete handles DELETE /api/users/{id}. Refused with 409 while
// the user is still attributed anywhere in the graph.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	uid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid user ID")
		return
	}

	if err := h.Cascade.DeleteUser(ctx, uid); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
