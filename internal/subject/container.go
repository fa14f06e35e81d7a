package subject

import (
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"gorm.io/gorm"
)

type SubjectContainer struct {
	Handler *Handler
	Service SubjectService
	Repo    SubjectRepository
}

func NewSubjectContainer(db *gorm.DB, inv cache.Invalidator) *SubjectContainer {
	repo := NewRepository(db)
	service := NewService(repo, inv)
	handler := NewHandler(service)

	return &SubjectContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
