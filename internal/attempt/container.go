package attempt

import (
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"gorm.io/gorm"
)

type AttemptContainer struct {
	Handler *Handler
	Service AttemptService
	Repo    AttemptRepository
}

func NewAttemptContainer(db *gorm.DB, inv cache.Invalidator) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, inv)
	handler := NewHandler(service)

	return &AttemptContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
