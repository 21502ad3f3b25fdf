// internal/app/features/artifacts/handler.go
package artifacts

import (
	"context"
	"errors"
	"net/http"

	"github.com/archhub/archhub/internal/app/graph/cascade"
	artifactstore "github.com/archhub/archhub/internal/app/store/artifacts"
	componentstore "github.com/archhub/archhub/internal/app/store/components"
	projectstore "github.com/archhub/archhub/internal/app/store/projects"
	userstore "github.com/archhub/archhub/internal/app/store/users"
	"github.com/archhub/archhub/internal/app/system/apperr"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/archhub/archhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the artifact endpoints. Creation records file
// metadata only; the file itself is written to storage by whoever owns
// the upload path. Deletion removes the row and then the backing file,
// best effort.
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
	Description string `json:"description,omitempty"`
	FilePath    string `json:"file_path"`
	FileType    string `json:"file_type"`
	FileSize    int64  `json:"file_size"`
	ProjectID   string `json:"project_id"`
	ComponentID string `json:"component_id,omitempty"`
	UploadedBy  string `json:"uploaded_by"`
}

// ServeCreate handles POST /api/artifacts. The project, the uploader,
// and the component (when linked) must all resolve.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req createRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.FilePath == "" {
		httpapi.WriteBadRequest(w, "name and file_path are required")
		return
	}
	pid, err := httpapi.ParseID(req.ProjectID)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}
	uploaderID, err := httpapi.ParseID(req.UploadedBy)
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid uploader ID")
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
	if _, err := userstore.New(h.DB).GetByID(ctx, uploaderID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.WriteError(w, h.Log, apperr.NotFound("user", uploaderID.Hex()))
			return
		}
		httpapi.WriteError(w, h.Log, err)
		return
	}

	art := models.Artifact{
		Name:        req.Name,
		Description: req.Description,
		FilePath:    req.FilePath,
		FileType:    req.FileType,
		FileSize:    req.FileSize,
		ProjectID:   pid,
		UploadedBy:  uploaderID,
	}
	if req.ComponentID != "" {
		cid, err := httpapi.ParseID(req.ComponentID)
		if err != nil {
			httpapi.WriteBadRequest(w, "invalid component ID")
			return
		}
		if _, err := componentstore.New(h.DB).GetByID(ctx, cid); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				httpapi.WriteError(w, h.Log, apperr.NotFound("component", cid.Hex()))
				return
			}
			httpapi.WriteError(w, h.Log, err)
			return
		}
		art.ComponentID = &cid
	}

	created, err := artifactstore.New(h.DB).Create(ctx, art)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// ServeList handles GET /api/artifacts filtered by project_id or
// component_id.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := artifactstore.New(h.DB)
	if hex := r.URL.Query().Get("project_id"); hex != "" {
		pid, err := httpapi.ParseID(hex)
		if err != nil {
			httpapi.WriteBadRequest(w, "invalid project ID")
			return
		}
		arts, err := store.ListByProject(ctx, pid)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, arts)
		return
	}
	if hex := r.URL.Query().Get("component_id"); hex != "" {
		cid, err := httpapi.ParseID(hex)
		if err != nil {
			httpapi.WriteBadRequest(w, "invalid component ID")
			return
		}
		arts, err := store.ListByComponent(ctx, cid)
		if err != nil {
			httpapi.WriteError(w, h.Log, err)
			return
		}
		httpapi.WriteJSON(w, http.StatusOK, arts)
		return
	}

	arts, err := store.List(ctx)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, arts)
}

// ServeGet handles GET /api/artifacts/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	aid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid artifact ID")
		return
	}

	art, err := artifactstore.New(h.DB).GetByID(ctx, aid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, art)
}

// ServeDelete handles DELETE /api/artifacts/{id}. 404 when the
// artifact does not exist; the backing file is removed best effort
// after the row.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	aid, err := httpapi.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid artifact ID")
		return
	}

	if err := h.Cascade.DeleteArtifact(ctx, aid); err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
