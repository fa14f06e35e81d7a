package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"github.com/saulo-duarte/quizmaster/internal/auth"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/dashboard"
	"github.com/saulo-duarte/quizmaster/internal/database"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type seeded struct {
	db      *gorm.DB
	alice   uint
	bob     uint
	quizID  uint
	service dashboard.Service
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()

	db, err := config.Open("sqlite", t.TempDir()+"/dashboard.db")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := user.NewRepository(db)
	alice := &user.User{Email: "alice@example.com", PasswordHash: "x", FullName: "Alice", Role: "user"}
	bob := &user.User{Email: "bob@example.com", PasswordHash: "x", FullName: "Bob", Role: "user"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	subjectRepo := subject.NewRepository(db)
	chapterRepo := chapter.NewRepository(db)
	subj, err := subject.NewService(subjectRepo, cache.Noop{}).Create(ctx, subject.CreateSubjectDTO{Name: "Math"})
	require.NoError(t, err)
	ch, err := chapter.NewService(chapterRepo, subjectRepo, cache.Noop{}).Create(ctx, subj.ID, chapter.CreateChapterDTO{Name: "Algebra"})
	require.NoError(t, err)
	q, err := quiz.NewService(db, quiz.NewRepository(db), chapterRepo, cache.Noop{}).CreateQuiz(ctx, ch.ID, quiz.CreateQuizDTO{
		Title:        "Linear equations",
		TimeDuration: 600,
		DateOfQuiz:   "2025-03-01",
		Questions: []quiz.CreateQuestionDTO{
			{QuestionText: "1+1", Option1: "2", Option2: "3", CorrectOption: 1},
			{QuestionText: "2+2", Option1: "3", Option2: "4", CorrectOption: 2},
		},
	})
	require.NoError(t, err)

	return seeded{
		db:      db,
		alice:   alice.ID,
		bob:     bob.ID,
		quizID:  q.Quiz.ID,
		service: dashboard.NewService(dashboard.NewRepository(db)),
	}
}

func (s seeded) score(t *testing.T, userID uint, value int) {
	t.Helper()
	repo := attempt.NewRepository(s.db)
	require.NoError(t, repo.CreateScore(context.Background(), &attempt.Score{
		UserID:           userID,
		QuizID:           s.quizID,
		Score:            value,
		AttemptTimestamp: time.Now().UTC(),
	}))
}

func TestAdminStats(t *testing.T) {
	s := seed(t)
	s.score(t, s.alice, 1)
	s.score(t, s.alice, 2)
	s.score(t, s.bob, 2)

	stats, err := s.service.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dashboard.AdminStats{
		TotalUsers:     2,
		TotalSubjects:  1,
		TotalChapters:  1,
		TotalQuizzes:   1,
		TotalQuestions: 2,
		TotalScores:    3,
		AverageScore:   1.67,
	}, stats)
}

func TestUserStats(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	t.Run("NoAttempts", func(t *testing.T) {
		stats, err := s.service.UserStats(ctx, s.bob)
		require.NoError(t, err)
		assert.Equal(t, &dashboard.UserStats{}, stats)
	})

	t.Run("OnlyOwnScores", func(t *testing.T) {
		s.score(t, s.alice, 3)
		s.score(t, s.alice, 5)
		s.score(t, s.bob, 1)

		stats, err := s.service.UserStats(ctx, s.alice)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stats.TotalQuizzesAttempted)
		assert.Equal(t, 4.0, stats.AverageUserScore)
	})
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, dashboard.Average(0, 0))
	assert.Equal(t, 4.0, dashboard.Average(8, 2))
	assert.Equal(t, 0.33, dashboard.Average(1, 3))
	assert.Equal(t, 2.67, dashboard.Average(8, 3))
}

func TestUserStatsHandler(t *testing.T) {
	s := seed(t)
	s.score(t, s.alice, 2)
	h := dashboard.NewHandler(s.service)

	t.Run("NoClaims", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.UserStats(w, httptest.NewRequest(http.MethodGet, "/api/user/dashboard/stats", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Principal", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/user/dashboard/stats", nil)
		r = r.WithContext(auth.WithClaims(r.Context(), &auth.Claims{UserID: s.alice, Role: auth.RoleUser}))
		w := httptest.NewRecorder()
		h.UserStats(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"total_quizzes_attempted":1,"average_user_score":2}`, w.Body.String())
	})
}
