package attempt

import (
	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/quizmaster/internal/cache"
)

// Register adds the quiz-taking endpoints to an /api router that already
// authenticates the caller as a user.
func Register(r chi.Router, h *Handler, c *cache.Middleware) {
	r.Post("/quiz_attempt_submit", h.Submit)

	r.With(c.PerPrincipal(cache.TagScores)).Get("/scores", h.ListScores)
	r.Post("/scores", h.RecordScore)

	r.Post("/user_answers", h.SaveAnswer)
	r.With(c.PerPrincipal(cache.TagScores)).Get("/user_answers/{quizId}/{questionId}", h.GetAnswer)
}
