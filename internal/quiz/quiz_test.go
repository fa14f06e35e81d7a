package quiz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	svc       QuizService
	chapterID uint
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := config.Open("sqlite", t.TempDir()+"/quizzes.db")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&subject.Subject{}, &chapter.Chapter{}, &Quiz{}, &Question{}))

	ctx := context.Background()
	subjectRepo := subject.NewRepository(db)
	chapterRepo := chapter.NewRepository(db)

	subj, err := subject.NewService(subjectRepo, cache.Noop{}).Create(ctx, subject.CreateSubjectDTO{Name: "Math"})
	require.NoError(t, err)
	ch, err := chapter.NewService(chapterRepo, subjectRepo, cache.Noop{}).Create(ctx, subj.ID, chapter.CreateChapterDTO{Name: "Algebra"})
	require.NoError(t, err)

	return fixture{
		db:        db,
		svc:       NewService(db, NewRepository(db), chapterRepo, cache.Noop{}),
		chapterID: ch.ID,
	}
}

func sampleQuestion(text string, correct int) CreateQuestionDTO {
	return CreateQuestionDTO{
		QuestionText:  text,
		Option1:       "a",
		Option2:       "b",
		Option3:       "c",
		Option4:       "d",
		CorrectOption: correct,
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.CreateQuiz(ctx, f.chapterID, CreateQuizDTO{
		Title:        "Quadratics",
		TimeDuration: 600,
		DateOfQuiz:   "2025-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", created.Quiz.DateOfQuiz)

	for i, correct := range []int{1, 2, 3} {
		_, err := f.svc.AddQuestionToQuiz(ctx, created.Quiz.ID, sampleQuestion(string(rune('A'+i)), correct))
		require.NoError(t, err)
	}

	admin, err := f.svc.ListQuestions(ctx, created.Quiz.ID)
	require.NoError(t, err)
	require.Len(t, admin, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{admin[0].CorrectOption, admin[1].CorrectOption, admin[2].CorrectOption})

	public, err := f.svc.ListPublicQuestions(ctx, created.Quiz.ID)
	require.NoError(t, err)
	require.Len(t, public, 3)

	raw, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_option")
}

func TestCreateQuizValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateQuiz(ctx, f.chapterID, CreateQuizDTO{Title: "Bad date", TimeDuration: 60, DateOfQuiz: "01-03-2025"})
	assert.ErrorIs(t, err, ErrInvalidQuizDate)

	_, err = f.svc.CreateQuiz(ctx, 999, CreateQuizDTO{Title: "Orphan", TimeDuration: 60, DateOfQuiz: "2025-03-01"})
	assert.ErrorIs(t, err, ErrChapterNotFound)

	_, err = f.svc.CreateQuiz(ctx, f.chapterID, CreateQuizDTO{
		Title:        "Bad question",
		TimeDuration: 60,
		DateOfQuiz:   "2025-03-01",
		Questions:    []CreateQuestionDTO{sampleQuestion("Q", 5)},
	})
	assert.ErrorIs(t, err, ErrCorrectOption)
}

func TestQuizTitleConflict(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	dto := CreateQuizDTO{Title: "Midterm", TimeDuration: 60, DateOfQuiz: "2025-03-01"}
	_, err := f.svc.CreateQuiz(ctx, f.chapterID, dto)
	require.NoError(t, err)

	_, err = f.svc.CreateQuiz(ctx, f.chapterID, dto)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCreateQuizWithQuestionsIsAtomic(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.CreateQuiz(ctx, f.chapterID, CreateQuizDTO{
		Title:        "Final",
		TimeDuration: 60,
		DateOfQuiz:   "2025-06-01",
		Questions:    []CreateQuestionDTO{sampleQuestion("Q1", 1), sampleQuestion("Q2", 4)},
	})
	require.NoError(t, err)
	assert.Len(t, created.Questions, 2)

	var count int64
	require.NoError(t, f.db.Model(&Question{}).Where("quiz_id = ?", created.Quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	require.NoError(t, f.svc.DeleteQuiz(ctx, created.Quiz.ID))
	require.NoError(t, f.db.Model(&Question{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateQuestion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.svc.CreateQuiz(ctx, f.chapterID, CreateQuizDTO{
		Title:        "Pop quiz",
		TimeDuration: 30,
		DateOfQuiz:   "2025-01-10",
		Questions:    []CreateQuestionDTO{sampleQuestion("Q1", 1)},
	})
	require.NoError(t, err)
	qid := created.Questions[0].ID

	text := "Q1 revised"
	updated, err := f.svc.UpdateQuestion(ctx, qid, UpdateQuestionDTO{QuestionText: &text})
	require.NoError(t, err)
	assert.Equal(t, "Q1 revised", updated.QuestionText)
	assert.Equal(t, 1, updated.CorrectOption)

	bad := 0
	_, err = f.svc.UpdateQuestion(ctx, qid, UpdateQuestionDTO{CorrectOption: &bad})
	assert.ErrorIs(t, err, ErrCorrectOption)

	require.NoError(t, f.svc.RemoveQuestion(ctx, qid))
	assert.ErrorIs(t, f.svc.RemoveQuestion(ctx, qid), ErrQuestionNotFound)
}

func TestRoutesRestrictAdminEndpoints(t *testing.T) {
	f := setup(t)
	router := Routes(NewHandler(f.svc), cache.NewMiddleware(cache.NewMemoryStore(), 0))

	call := func(role, path string) int {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		r = r.WithContext(auth.WithClaims(r.Context(), &auth.Claims{UserID: 1, Role: role}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call(auth.RoleUser, "/all"))
	assert.Equal(t, http.StatusForbidden, call(auth.RoleUser, "/1"))
	assert.Equal(t, http.StatusNotFound, call(auth.RoleAdmin, "/1"))
}
