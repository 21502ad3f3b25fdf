// internal/app/features/organizations/routes.go
package organizations

import "github.com/go-chi/chi/v5"

// Routes returns the organization subrouter, mounted under
// /api/organizations.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.ServeUpdate)
	r.Delete("/{id}", h.ServeDelete)
	r.Get("/{id}/users", h.ServeListUsers)
	return r
}
