// internal/app/features/members/handler.go
package members

import (
	"context"
	"net/http"

	"github.com/archhub/archhub/internal/app/graph/membership"
	memberstore "github.com/archhub/archhub/internal/app/store/members"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the project membership endpoints. All mutations go
// through the membership guard.
type Handler struct {
	DB    *mongo.Database
	Guard *membership.Guard
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, guard *membership.Guard, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Guard: guard, Log: logger}
}

type addRequest struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	AddedBy   string `json:"added_by"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// ServeAdd handles POST /api/members.
func (h *Handler) ServeAdd(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req addRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}
	pid, err := httpapi.ParseID(req.ProjectID)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}
	uid, err := httpapi.ParseID(req.UserID)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid user ID")
		return
	}
	adderID, err := httpapi.ParseID(req.AddedBy)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid adder ID")
		return
	}

	m, err := h.Guard.AddMember(ctx, pid, uid, req.Role, adderID)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, m)
}

// ServeListByProject handles GET /api/members/project/{projectID}.
func (h *Handler) ServeListByProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "projectID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}

	ms, err := memberstore.New(h.DB).ListByProject(ctx, pid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, ms)
}

// ServeUpdateRole handles PUT /api/members/project/{projectID}/user/{userID}.
func (h *Handler) ServeUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "projectID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}
	uid, err := httpapi.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid user ID")
		return
	}

	var req updateRoleRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}

	m, err := h.Guard.UpdateMemberRole(ctx, pid, uid, req.Role)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, m)
}

// ServeRemove handles DELETE /api/members/project/{projectID}/user/{userID}.
func (h *Handler) ServeRemove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "projectID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}
	uid, err := httpapi.ParseID(chi.URLParam(r, "userID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid user ID")
		return
	}

	if err := h.Guard.RemoveMember(ctx, pid, uid); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
