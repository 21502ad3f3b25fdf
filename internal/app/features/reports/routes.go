// internal/app/features/reports/routes.go
package reports

import "github.com/go-chi/chi/v5"

// Routes returns the reports subrouter, mounted under /api/reports.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/components/{projectID}", h.ServeComponentReport)
	r.Get("/relationships/{projectID}", h.ServeRelationshipReport)
	return r
}
