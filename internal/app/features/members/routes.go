// internal/app/features/members/routes.go
package members

import "github.com/go-chi/chi/v5"

// Routes returns the membership subrouter, mounted under /api/members.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeAdd)
	r.Get("/project/{projectID}", h.ServeListByProject)
	r.Put("/project/{projectID}/user/{userID}", h.ServeUpdateRole)
	r.Delete("/project/{projectID}/user/{userID}", h.ServeRemove)
	return r
}
