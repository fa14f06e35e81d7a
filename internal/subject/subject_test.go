package subject

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) SubjectService {
	t.Helper()
	db, err := config.Open("sqlite", t.TempDir()+"/subjects.db")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Subject{}))
	return NewService(NewRepository(db), cache.Noop{})
}

func TestSubjectCRUD(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	math, err := svc.Create(ctx, CreateSubjectDTO{Name: "Mathematics", Description: "Numbers"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateSubjectDTO{Name: "Physics", Description: "Motion and energy"})
	require.NoError(t, err)

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateSubjectDTO{Name: "Mathematics"})
		assert.ErrorIs(t, err, ErrNameTaken)
	})

	t.Run("Search", func(t *testing.T) {
		found, err := svc.List(ctx, "ENERGY")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Physics", found[0].Name)

		all, err := svc.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		desc := "Algebra and geometry"
		updated, err := svc.Update(ctx, math.ID, UpdateSubjectDTO{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Mathematics", updated.Name)
		assert.Equal(t, desc, updated.Description)

		taken := "Physics"
		_, err = svc.Update(ctx, math.ID, UpdateSubjectDTO{Name: &taken})
		assert.ErrorIs(t, err, ErrNameTaken)

		empty := "  "
		_, err = svc.Update(ctx, math.ID, UpdateSubjectDTO{Name: &empty})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, math.ID))
		_, err := svc.Get(ctx, math.ID)
		assert.ErrorIs(t, err, ErrSubjectNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, math.ID), ErrSubjectNotFound)
	})
}

func TestSubjectRoutes(t *testing.T) {
	h := NewHandler(newTestService(t))
	router := Routes(h, cache.NewMiddleware(cache.NewMemoryStore(), 0))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
		return w
	}

	assert.Equal(t, http.StatusCreated, do(http.MethodPost, "/", `{"name":"History"}`).Code)
	assert.Equal(t, http.StatusConflict, do(http.MethodPost, "/", `{"name":"History"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/", `{"description":"no name"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/abc", "").Code)

	w := do(http.MethodGet, "/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"History","description":""}`, w.Body.String())

	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/1", "").Code)
}
