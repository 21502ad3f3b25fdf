// internal/app/features/artifacts/routes.go
package artifacts

import "github.com/go-chi/chi/v5"

// Routes returns the artifact subrouter, mounted under /api/artifacts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Delete("/{id}", h.ServeDelete)
	return r
}
