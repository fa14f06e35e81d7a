package subject

import (
	"context"
	"errors"
	"strings"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/config"
)

var (
	ErrSubjectNotFound = apperror.NotFound("Subject not found")
	ErrNameRequired    = apperror.Validation("Subject name is required")
	ErrNameTaken       = apperror.Conflict("Subject with this name already exists")
)

type SubjectService interface {
	List(ctx context.Context, query string) ([]SubjectResponse, error)
	Create(ctx context.Context, dto CreateSubjectDTO) (*SubjectResponse, error)
	Get(ctx context.Context, id uint) (*SubjectResponse, error)
	Update(ctx context.Context, id uint, dto UpdateSubjectDTO) (*SubjectResponse, error)
	Delete(ctx context.Context, id uint) error
}

type subjectService struct {
	repo  SubjectRepository
	cache cache.Invalidator
}

func NewService(repo SubjectRepository, inv cache.Invalidator) SubjectService {
	return &subjectService{repo: repo, cache: inv}
}

func (s *subjectService) List(ctx context.Context, query string) ([]SubjectResponse, error) {
	subjects, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, apperror.Internal("failed to list subjects", err)
	}
	out := make([]SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, toResponse(&subjects[i]))
	}
	return out, nil
}

func (s *subjectService) Create(ctx context.Context, dto CreateSubjectDTO) (*SubjectResponse, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if taken, err := s.repo.NameTaken(ctx, name, 0); err != nil {
		return nil, apperror.Internal("failed to create subject", err)
	} else if taken {
		return nil, ErrNameTaken
	}

	subj := &Subject{Name: name, Description: dto.Description}
	if err := s.repo.Create(ctx, subj); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to create subject")
		return nil, apperror.Internal("failed to create subject", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagSubjects, cache.TagStats)
	log.WithField("subject_id", subj.ID).Info("Subject created")
	resp := toResponse(subj)
	return &resp, nil
}

func (s *subjectService) Get(ctx context.Context, id uint) (*SubjectResponse, error) {
	subj, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(subj)
	return &resp, nil
}

func (s *subjectService) Update(ctx context.Context, id uint, dto UpdateSubjectDTO) (*SubjectResponse, error) {
	log := config.WithContext(ctx)

	subj, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		if taken, err := s.repo.NameTaken(ctx, name, id); err != nil {
			return nil, apperror.Internal("failed to update subject", err)
		} else if taken {
			return nil, ErrNameTaken
		}
		subj.Name = name
	}
	if dto.Description != nil {
		subj.Description = *dto.Description
	}

	if err := s.repo.Update(ctx, subj); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		log.WithError(err).Error("Failed to update subject")
		return nil, apperror.Internal("failed to update subject", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagSubjects)
	resp := toResponse(subj)
	return &resp, nil
}

// Delete removes the subject and, through foreign key cascades, every chapter,
// quiz, question, score and answer beneath it.
func (s *subjectService) Delete(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrSubjectNotFound
		}
		log.WithError(err).Error("Failed to delete subject")
		return apperror.Internal("failed to delete subject", err)
	}

	cache.Invalidate(ctx, s.cache,
		cache.TagSubjects, cache.TagChapters, cache.TagQuizzes,
		cache.TagQuestions, cache.TagScores, cache.TagStats)
	log.WithField("subject_id", id).Info("Subject deleted")
	return nil
}

func (s *subjectService) find(ctx context.Context, id uint) (*Subject, error) {
	subj, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, apperror.Internal("failed to load subject", err)
	}
	return subj, nil
}

func toResponse(s *Subject) SubjectResponse {
	return SubjectResponse{ID: s.ID, Name: s.Name, Description: s.Description}
}
