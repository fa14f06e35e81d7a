package user

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizmaster/internal/cache"
)

func Routes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()

	r.With(c.PerPrincipal(cache.TagUsers)).Get("/{id}", h.GetUser)
	r.Put("/{id}", h.UpdateUser)
	return r
}

func AdminRoutes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()

	r.With(c.Shared(cache.TagUsers)).Get("/", h.ListUsers)
	r.Delete("/{id}", h.DeleteUser)
	return r
}
