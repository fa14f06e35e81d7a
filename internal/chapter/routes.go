package chapter

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizmaster/internal/cache"
)

func Routes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()

	r.With(c.Shared(cache.TagChapters)).Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// SubjectRoutes adds /{id}/chapters to a subject router.
func SubjectRoutes(r chi.Router, h *Handler, c *cache.Middleware) {
	r.With(c.Shared(cache.TagChapters)).Get("/{id}/chapters", h.ListBySubject)
	r.Post("/{id}/chapters", h.Create)
}
