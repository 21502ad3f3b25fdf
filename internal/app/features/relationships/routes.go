// internal/app/features/relationships/routes.go
package relationships

import "github.com/go-chi/chi/v5"

// Routes returns the relationship subrouter, mounted under
// /api/relationships.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Delete("/{id}", h.ServeDelete)
	return r
}
