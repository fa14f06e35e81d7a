package quiz

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/cache"
)

// Routes serves /api/quizzes. Everything except /all is admin only; the
// caller must already have run auth.AuthMiddleware.
func Routes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()

	r.With(c.Shared(cache.TagQuizzes)).Get("/all", h.ListAll)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))

		r.With(c.Shared(cache.TagQuizzes)).Get("/{id}", h.GetQuiz)
		r.Put("/{id}", h.UpdateQuiz)
		r.Delete("/{id}", h.DeleteQuiz)
		r.With(c.Shared(cache.TagQuestions)).Get("/{id}/questions", h.ListQuestions)
		r.Post("/{id}/questions", h.AddQuestion)
	})
	return r
}

func QuestionRoutes(h *Handler, c *cache.Middleware) chi.Router {
	r := chi.NewRouter()

	r.With(c.Shared(cache.TagQuestions)).Get("/{id}", h.GetQuestion)
	r.Put("/{id}", h.UpdateQuestion)
	r.Delete("/{id}", h.RemoveQuestion)
	return r
}

// ChapterRoutes adds /{id}/quizzes to a chapter router.
func ChapterRoutes(r chi.Router, h *Handler, c *cache.Middleware) {
	r.With(c.Shared(cache.TagQuizzes)).Get("/{id}/quizzes", h.ListByChapter)
	r.Post("/{id}/quizzes", h.CreateQuiz)
}
