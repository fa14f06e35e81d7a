package chapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/sirupsen/logrus"
)

var (
	ErrChapterNotFound = apperror.NotFound("Chapter not found")
	ErrNameRequired    = apperror.Validation("Chapter name is required")
	ErrSubjectNotFound = subject.ErrSubjectNotFound
)

func errNameTaken(name string) error {
	return apperror.Conflict(fmt.Sprintf("Chapter with name %q already exists under this subject", name))
}

type ChapterService interface {
	ListBySubject(ctx context.Context, subjectID uint, query string) ([]ChapterResponse, error)
	Create(ctx context.Context, subjectID uint, dto CreateChapterDTO) (*ChapterResponse, error)
	Get(ctx context.Context, id uint) (*ChapterResponse, error)
	Update(ctx context.Context, id uint, dto UpdateChapterDTO) (*ChapterResponse, error)
	Delete(ctx context.Context, id uint) error
}

type chapterService struct {
	repo        ChapterRepository
	subjectRepo subject.SubjectRepository
	cache       cache.Invalidator
}

func NewService(repo ChapterRepository, subjectRepo subject.SubjectRepository, inv cache.Invalidator) ChapterService {
	return &chapterService{repo: repo, subjectRepo: subjectRepo, cache: inv}
}

func (s *chapterService) requireSubject(ctx context.Context, subjectID uint) error {
	ok, err := s.subjectRepo.Exists(ctx, subjectID)
	if err != nil {
		return apperror.Internal("failed to load subject", err)
	}
	if !ok {
		return ErrSubjectNotFound
	}
	return nil
}

func (s *chapterService) ListBySubject(ctx context.Context, subjectID uint, query string) ([]ChapterResponse, error) {
	if err := s.requireSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	chapters, err := s.repo.ListBySubject(ctx, subjectID, query)
	if err != nil {
		return nil, apperror.Internal("failed to list chapters", err)
	}
	out := make([]ChapterResponse, 0, len(chapters))
	for i := range chapters {
		out = append(out, toResponse(&chapters[i]))
	}
	return out, nil
}

func (s *chapterService) Create(ctx context.Context, subjectID uint, dto CreateChapterDTO) (*ChapterResponse, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.requireSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	if taken, err := s.repo.NameTaken(ctx, subjectID, name, 0); err != nil {
		return nil, apperror.Internal("failed to create chapter", err)
	} else if taken {
		return nil, errNameTaken(name)
	}

	ch := &Chapter{SubjectID: subjectID, Name: name, Description: dto.Description}
	if err := s.repo.Create(ctx, ch); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, errNameTaken(name)
		}
		log.WithError(err).Error("Failed to create chapter")
		return nil, apperror.Internal("failed to create chapter", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagChapters, cache.TagStats)
	log.WithFields(logrus.Fields{
		"chapter_id": ch.ID,
		"subject_id": subjectID,
	}).Info("Chapter created")
	resp := toResponse(ch)
	return &resp, nil
}

func (s *chapterService) Get(ctx context.Context, id uint) (*ChapterResponse, error) {
	ch, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(ch)
	return &resp, nil
}

func (s *chapterService) Update(ctx context.Context, id uint, dto UpdateChapterDTO) (*ChapterResponse, error) {
	log := config.WithContext(ctx)

	ch, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	name := ch.Name
	if dto.Name != nil {
		name = strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
	}
	subjectID := ch.SubjectID
	if dto.SubjectID != nil && *dto.SubjectID != ch.SubjectID {
		if err := s.requireSubject(ctx, *dto.SubjectID); err != nil {
			return nil, err
		}
		subjectID = *dto.SubjectID
	}

	if name != ch.Name || subjectID != ch.SubjectID {
		if taken, err := s.repo.NameTaken(ctx, subjectID, name, id); err != nil {
			return nil, apperror.Internal("failed to update chapter", err)
		} else if taken {
			return nil, errNameTaken(name)
		}
	}

	ch.Name = name
	ch.SubjectID = subjectID
	if dto.Description != nil {
		ch.Description = *dto.Description
	}

	if err := s.repo.Update(ctx, ch); err != nil {
		if apperror.IsUniqueViolation(err) {
			return nil, errNameTaken(name)
		}
		log.WithError(err).Error("Failed to update chapter")
		return nil, apperror.Internal("failed to update chapter", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagChapters)
	resp := toResponse(ch)
	return &resp, nil
}

func (s *chapterService) Delete(ctx context.Context, id uint) error {
	log := config.WithContext(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrChapterNotFound
		}
		log.WithError(err).Error("Failed to delete chapter")
		return apperror.Internal("failed to delete chapter", err)
	}

	cache.Invalidate(ctx, s.cache,
		cache.TagChapters, cache.TagQuizzes, cache.TagQuestions,
		cache.TagScores, cache.TagStats)
	log.WithField("chapter_id", id).Info("Chapter deleted")
	return nil
}

func (s *chapterService) find(ctx context.Context, id uint) (*Chapter, error) {
	ch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, apperror.Internal("failed to load chapter", err)
	}
	return ch, nil
}

func toResponse(c *Chapter) ChapterResponse {
	return ChapterResponse{ID: c.ID, SubjectID: c.SubjectID, Name: c.Name, Description: c.Description}
}
