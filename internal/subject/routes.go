package subject

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizmaster/internal/cache"
)

// Routes serves /api/subjects. The caller adds the nested chapter routes.
func Routes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()

	r.With(c.Shared(cache.TagSubjects)).Get("/", h.List)
	r.Post("/", h.Create)
	r.With(c.Shared(cache.TagSubjects)).Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}
