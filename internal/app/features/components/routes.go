// internal/app/features/components/routes.go
package components

import "github.com/go-chi/chi/v5"

// Routes returns the component subrouter, mounted under
// /api/components.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.ServeUpdate)
	r.Delete("/{id}", h.ServeDelete)
	return r
}
