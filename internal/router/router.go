package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/dashboard"
	"github.com/saulo-duarte/quizmaster/internal/middlewares"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/report"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/saulo-duarte/quizmaster/internal/user"
)

type RouterConfig struct {
	Cache            *cache.Middleware
	UserHandler      *user.Handler
	SubjectHandler   *subject.Handler
	ChapterHandler   *chapter.Handler
	QuizHandler      *quiz.Handler
	AttemptHandler   *attempt.Handler
	DashboardHandler *dashboard.Handler
	ReportHandler    *report.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	c := cfg.Cache

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/register", cfg.UserHandler.Register)
	r.Post("/login", cfg.UserHandler.Login)
	r.Post("/logout", auth.NewHandler().Logout)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler, c))
		r.Mount("/users", user.Routes(cfg.UserHandler, c))

		r.Route("/user", func(r chi.Router) {
			r.With(c.Shared(cache.TagSubjects)).Get("/subjects", cfg.SubjectHandler.List)
			r.With(c.Shared(cache.TagChapters)).Get("/subjects/{id}/chapters", cfg.ChapterHandler.ListBySubject)
			r.With(c.Shared(cache.TagQuizzes)).Get("/chapters/{id}/quizzes", cfg.QuizHandler.ListByChapter)
			r.With(c.Shared(cache.TagQuestions)).Get("/quizzes/{id}/questions", cfg.QuizHandler.ListPublicQuestions)

			r.With(auth.RequireRole(auth.RoleUser)).Mount("/dashboard", dashboard.UserRoutes(cfg.DashboardHandler, c))
		})

		// user principals only: scores and answers reference users.id
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleUser))
			attempt.Register(r, cfg.AttemptHandler, c)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))

			subjects := subject.Routes(cfg.SubjectHandler, c)
			chapter.SubjectRoutes(subjects, cfg.ChapterHandler, c)
			r.Mount("/subjects", subjects)

			chapters := chapter.Routes(cfg.ChapterHandler, c)
			quiz.ChapterRoutes(chapters, cfg.QuizHandler, c)
			r.Mount("/chapters", chapters)

			r.Mount("/questions", quiz.QuestionRoutes(cfg.QuizHandler, c))

			r.Route("/admin", func(r chi.Router) {
				r.Mount("/users", user.AdminRoutes(cfg.UserHandler, c))
				r.Mount("/dashboard", dashboard.AdminRoutes(cfg.DashboardHandler, c))
				r.Mount("/reports", report.Routes(cfg.ReportHandler))
			})
		})
	})

	return otelhttp.NewHandler(r, "quizmaster")
}
