package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	"github.com/saulo-duarte/quizmaster/internal/report"
	"github.com/saulo-duarte/quizmaster/internal/router"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()
	t.Setenv("JWT_SECRET", "router-secret")
	auth.Init()
	config.App.JWTTTL = time.Hour
	config.App.AllowedOrigin = "*"
	config.App.ReportWorkers = 1
	config.App.ReportQueueSize = 4
	config.App.CSVReportTimeout = 5 * time.Second
	config.App.MonthlyReportTimeout = 5 * time.Second

	db, err := config.Open("sqlite", t.TempDir()+"/router.db")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store := cache.NewMemoryStore()
	users := user.NewUserContainer(db, store)
	subjects := subject.NewSubjectContainer(db, store)
	chapters := chapter.NewChapterContainer(db, subjects.Repo, store)
	quizzes := quiz.NewQuizContainer(db, chapters.Repo, store)
	attempts := attempt.NewAttemptContainer(db, store)

	reports := report.NewReportContainer(db)
	reports.Start()
	t.Cleanup(func() { reports.Queue.Close() })

	h := router.New(router.RouterConfig{
		Cache:            cache.NewMiddleware(store, time.Minute),
		UserHandler:      users.Handler,
		SubjectHandler:   subjects.Handler,
		ChapterHandler:   chapters.Handler,
		QuizHandler:      quizzes.Handler,
		AttemptHandler:   attempts.Handler,
		DashboardHandler: dashboard.NewContainer(db).Handler,
		ReportHandler:    reports.Handler,
	})
	return &api{t: t, handler: h}
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func TestHealthAndAuthGate(t *testing.T) {
	a := newAPI(t)

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", nil).Code)

	w := a.do(http.MethodGet, "/api/user/subjects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Missing Authorization Header"}`, w.Body.String())

	w = a.do(http.MethodGet, "/api/user/subjects", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestQuizLifecycle(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/register", "", map[string]string{
		"email":         "student@example.com",
		"password":      "pass1234",
		"full_name":     "Student One",
		"qualification": "BSc",
		"dob":           "2001-09-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/login", "", map[string]string{"email": "student@example.com", "password": "pass1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	decode(t, w, &login)
	assert.Equal(t, auth.RoleUser, login.Role)
	userToken := login.AccessToken

	adminToken, err := auth.GenerateJWT(1, auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/subjects", userToken, map[string]string{"name": "Physics"}).Code)

	w = a.do(http.MethodPost, "/api/subjects", adminToken, map[string]string{"name": "Physics"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var subj struct{ ID uint }
	decode(t, w, &subj)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/subjects/%d/chapters", subj.ID), adminToken, map[string]string{"name": "Optics"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ch struct{ ID uint }
	decode(t, w, &ch)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/chapters/%d/quizzes", ch.ID), adminToken, map[string]interface{}{
		"title":         "Lenses",
		"time_duration": 300,
		"date_of_quiz":  "2025-06-01",
		"questions": []map[string]interface{}{
			{"question_text": "Convex lens converges?", "option1": "yes", "option2": "no", "correct_option": 1},
			{"question_text": "Focal length unit?", "option1": "kg", "option2": "m", "correct_option": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Quiz      struct{ ID uint } `json:"quiz"`
		Questions []struct{ ID uint }
	}
	decode(t, w, &created)
	require.Len(t, created.Questions, 2)

	t.Run("PublicQuestionsHideAnswers", func(t *testing.T) {
		w := a.do(http.MethodGet, fmt.Sprintf("/api/user/quizzes/%d/questions", created.Quiz.ID), userToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "correct_option")

		assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, fmt.Sprintf("/api/quizzes/%d/questions", created.Quiz.ID), userToken, nil).Code)
		assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/quizzes/all", userToken, nil).Code)
	})

	t.Run("CachedListingInvalidatedByWrite", func(t *testing.T) {
		first := a.do(http.MethodGet, "/api/user/subjects", userToken, nil)
		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
		assert.Equal(t, "HIT", a.do(http.MethodGet, "/api/user/subjects", userToken, nil).Header().Get("X-Cache"))

		require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/subjects", adminToken, map[string]string{"name": "Chemistry"}).Code)

		after := a.do(http.MethodGet, "/api/user/subjects", userToken, nil)
		assert.Equal(t, "MISS", after.Header().Get("X-Cache"))
		assert.Contains(t, after.Body.String(), "Chemistry")
	})

	t.Run("SubmitAndStats", func(t *testing.T) {
		submission := map[string]interface{}{
			"quiz_id": created.Quiz.ID,
			"answers": []map[string]interface{}{
				{"question_id": created.Questions[0].ID, "selected_option": 1},
				{"question_id": created.Questions[1].ID, "selected_option": 1},
			},
		}
		assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/api/quiz_attempt_submit", adminToken, submission).Code)

		w := a.do(http.MethodPost, "/api/quiz_attempt_submit", userToken, submission)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var result attempt.SubmitAttemptResponse
		decode(t, w, &result)
		assert.Equal(t, 1, result.FinalScore)
		assert.Equal(t, 2, result.TotalQuestions)

		w = a.do(http.MethodGet, "/api/user/dashboard/stats", userToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"total_quizzes_attempted":1,"average_user_score":1}`, w.Body.String())

		w = a.do(http.MethodGet, "/api/admin/dashboard/stats", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats dashboard.AdminStats
		decode(t, w, &stats)
		assert.EqualValues(t, 1, stats.TotalUsers)
		assert.EqualValues(t, 2, stats.TotalQuestions)
		assert.EqualValues(t, 1, stats.TotalScores)

		assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/admin/dashboard/stats", userToken, nil).Code)
	})

	t.Run("ReportDownload", func(t *testing.T) {
		w := a.do(http.MethodPost, "/api/admin/reports/export-csv", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "attachment; filename=users_report.csv", w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Body.String(), "student@example.com")
	})
}
