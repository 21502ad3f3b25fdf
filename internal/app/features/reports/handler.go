// internal/app/features/reports/handler.go
package reports

import (
	"context"
	"net/http"

	graphreports "github.com/archhub/archhub/internal/app/graph/reports"
	"github.com/archhub/archhub/internal/app/system/httpapi"
	"github.com/archhub/archhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the report endpoints.
type Handler struct {
	Engine *graphreports.Engine
	Log    *zap.Logger
}

func NewHandler(engine *graphreports.Engine, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Log: logger}
}

// ServeComponentReport handles GET /api/reports/components/{projectID}.
func (h *Handler) ServeComponentReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "projectID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}

	report, err := h.Engine.ComponentReport(ctx, pid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, report)
}

// ServeRelationshipReport handles GET /api/reports/relationships/{projectID}.
func (h *Handler) ServeRelationshipReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pid, err := httpapi.ParseID(chi.URLParam(r, "projectID"))
	if err != nil {
		httpapi.WriteBadRequest(w, "invalid project ID")
		return
	}

	report, err := h.Engine.RelationshipReport(ctx, pid)
	if err != nil {
		httpapi.WriteError(w, h.Log, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, report)
}
