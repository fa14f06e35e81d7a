package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/dashboard"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/report"
	"github.com/saulo-duarte/quizmaster/internal/router"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/saulo-duarte/quizmaster/internal/user"
)

type Container struct {
	Cache           cache.Store
	CacheMiddleware *cache.Middleware

	UserContainer      *user.UserContainer
	SubjectContainer   *subject.SubjectContainer
	ChapterContainer   *chapter.ChapterContainer
	QuizContainer      *quiz.QuizContainer
	AttemptContainer   *attempt.AttemptContainer
	DashboardContainer *dashboard.Container
	ReportContainer    *report.ReportContainer
}

// Init loads settings and opens the database. Commands that only touch the
// schema stop here.
func Init(ctx context.Context) error {
	config.Init()
	auth.Init()

	if err := config.Connect(ctx, config.App.DatabaseDSN); err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	return nil
}

func New(ctx context.Context) (*Container, error) {
	if err := Init(ctx); err != nil {
		return nil, err
	}

	store := newCacheStore(ctx)
	db := config.DB

	userContainer := user.NewUserContainer(db, store)
	subjectContainer := subject.NewSubjectContainer(db, store)
	chapterContainer := chapter.NewChapterContainer(db, subjectContainer.Repo, store)
	quizContainer := quiz.NewQuizContainer(db, chapterContainer.Repo, store)
	attemptContainer := attempt.NewAttemptContainer(db, store)
	dashboardContainer := dashboard.NewContainer(db)
	reportContainer := report.NewReportContainer(db)

	return &Container{
		Cache:              store,
		CacheMiddleware:    cache.NewMiddleware(store, config.App.CacheTTL),
		UserContainer:      userContainer,
		SubjectContainer:   subjectContainer,
		ChapterContainer:   chapterContainer,
		QuizContainer:      quizContainer,
		AttemptContainer:   attemptContainer,
		DashboardContainer: dashboardContainer,
		ReportContainer:    reportContainer,
	}, nil
}

func newCacheStore(ctx context.Context) cache.Store {
	if config.App.RedisURL == "" {
		return cache.NewMemoryStore()
	}
	store, err := cache.NewRedisStore(ctx, config.App.RedisURL)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("redis unavailable, falling back to in-memory cache")
		return cache.NewMemoryStore()
	}
	config.WithContext(ctx).Info("using redis response cache")
	return store
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		Cache:            c.CacheMiddleware,
		UserHandler:      c.UserContainer.Handler,
		SubjectHandler:   c.SubjectContainer.Handler,
		ChapterHandler:   c.ChapterContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		AttemptHandler:   c.AttemptContainer.Handler,
		DashboardHandler: c.DashboardContainer.Handler,
		ReportHandler:    c.ReportContainer.Handler,
	})
}

func (c *Container) Close(ctx context.Context) error {
	err := c.ReportContainer.Shutdown(ctx)
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
