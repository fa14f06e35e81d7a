package chapter

import (
	"context"
	"testing"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (ChapterService, subject.SubjectService) {
	t.Helper()
	db, err := config.Open("sqlite", t.TempDir()+"/chapters.db")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subject.Subject{}, &Chapter{}))

	subjectRepo := subject.NewRepository(db)
	return NewService(NewRepository(db), subjectRepo, cache.Noop{}),
		subject.NewService(subjectRepo, cache.Noop{})
}

func TestChapterService(t *testing.T) {
	svc, subjects := setup(t)
	ctx := context.Background()

	math, err := subjects.Create(ctx, subject.CreateSubjectDTO{Name: "Math"})
	require.NoError(t, err)
	physics, err := subjects.Create(ctx, subject.CreateSubjectDTO{Name: "Physics"})
	require.NoError(t, err)

	algebra, err := svc.Create(ctx, math.ID, CreateChapterDTO{Name: "Algebra", Description: "Linear equations"})
	require.NoError(t, err)
	assert.Equal(t, math.ID, algebra.SubjectID)

	t.Run("MissingSubject", func(t *testing.T) {
		_, err := svc.Create(ctx, 999, CreateChapterDTO{Name: "Orphan"})
		assert.ErrorIs(t, err, ErrSubjectNotFound)

		_, err = svc.ListBySubject(ctx, 999, "")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("DuplicateNameWithinSubject", func(t *testing.T) {
		_, err := svc.Create(ctx, math.ID, CreateChapterDTO{Name: "Algebra"})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

		_, err = svc.Create(ctx, physics.ID, CreateChapterDTO{Name: "Algebra"})
		assert.NoError(t, err)
	})

	t.Run("MoveIntoConflict", func(t *testing.T) {
		_, err := svc.Update(ctx, algebra.ID, UpdateChapterDTO{SubjectID: &physics.ID})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("Search", func(t *testing.T) {
		found, err := svc.ListBySubject(ctx, math.ID, "linear")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Algebra", found[0].Name)

		none, err := svc.ListBySubject(ctx, math.ID, "calculus")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("CascadeFromSubject", func(t *testing.T) {
		require.NoError(t, subjects.Delete(ctx, math.ID))
		_, err := svc.Get(ctx, algebra.ID)
		assert.ErrorIs(t, err, ErrChapterNotFound)
	})
}
