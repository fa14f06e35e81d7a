package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizmaster/internal/cache"
)

func AdminRoutes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()
	r.With(c.Shared(
		cache.TagStats,
		cache.TagUsers,
		cache.TagSubjects,
		cache.TagChapters,
		cache.TagQuizzes,
		cache.TagQuestions,
		cache.TagScores,
	)).Get("/stats", h.AdminStats)
	return r
}

func UserRoutes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()
	r.With(c.PerPrincipal(cache.TagScores, cache.TagStats)).Get("/stats", h.UserStats)
	return r
}
