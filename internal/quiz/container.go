package quiz

import (
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"gorm.io/gorm"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
	Repo    QuizRepository
}

func NewQuizContainer(db *gorm.DB, chapterRepo chapter.ChapterRepository, inv cache.Invalidator) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, chapterRepo, inv)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
