package chapter

import (
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"gorm.io/gorm"
)

type ChapterContainer struct {
	Handler *Handler
	Service ChapterService
	Repo    ChapterRepository
}

func NewChapterContainer(db *gorm.DB, subjectRepo subject.SubjectRepository, inv cache.Invalidator) *ChapterContainer {
	repo := NewRepository(db)
	service := NewService(repo, subjectRepo, inv)
	handler := NewHandler(service)

	return &ChapterContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
