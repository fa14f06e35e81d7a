package user

import (
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"gorm.io/gorm"
)

type UserContainer struct {
	Handler *Handler
	Service UserService
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB, inv cache.Invalidator) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, inv)
	handler := NewHandler(service)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
