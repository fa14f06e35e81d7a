package report_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/database"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/report"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportsAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := config.Open("sqlite", t.TempDir()+"/reports.db")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := user.NewRepository(db)
	active := &user.User{Email: "active@example.com", PasswordHash: "x", FullName: "Active", Role: "user"}
	idle := &user.User{Email: "idle@example.com", PasswordHash: "x", FullName: "Idle", Role: "user"}
	require.NoError(t, users.Create(ctx, active))
	require.NoError(t, users.Create(ctx, idle))

	subjectRepo := subject.NewRepository(db)
	chapterRepo := chapter.NewRepository(db)
	subj, err := subject.NewService(subjectRepo, cache.Noop{}).Create(ctx, subject.CreateSubjectDTO{Name: "History"})
	require.NoError(t, err)
	ch, err := chapter.NewService(chapterRepo, subjectRepo, cache.Noop{}).Create(ctx, subj.ID, chapter.CreateChapterDTO{Name: "Rome"})
	require.NoError(t, err)
	q, err := quiz.NewService(db, quiz.NewRepository(db), chapterRepo, cache.Noop{}).CreateQuiz(ctx, ch.ID, quiz.CreateQuizDTO{
		Title:        "Emperors",
		TimeDuration: 120,
		DateOfQuiz:   "2025-01-10",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	scores := attempt.NewRepository(db)
	for _, s := range []attempt.Score{
		{UserID: active.ID, QuizID: q.Quiz.ID, Score: 3, AttemptTimestamp: now.AddDate(0, 0, -40)},
		{UserID: active.ID, QuizID: q.Quiz.ID, Score: 5, AttemptTimestamp: now.AddDate(0, 0, -10)},
	} {
		s := s
		require.NoError(t, scores.CreateScore(ctx, &s))
	}

	g := report.NewGenerator(users, scores)

	t.Run("CSV", func(t *testing.T) {
		out, err := g.UserActivityCSV(ctx)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[1], ",2,4.0"), lines[1])
		assert.True(t, strings.HasSuffix(lines[2], ",0,0"), lines[2])
	})

	t.Run("MonthlyWindow", func(t *testing.T) {
		out, err := g.MonthlyActivityHTML(ctx, now)
		require.NoError(t, err)

		assert.Contains(t, out, "<tr><td>Emperors</td><td>5</td>")
		assert.NotContains(t, out, "<tr><td>Emperors</td><td>3</td>")
		assert.Contains(t, out, "<strong>Total Quizzes Taken:</strong> 1")
		assert.Contains(t, out, "<strong>Average Score:</strong> 5.0%")
		assert.Equal(t, 1, strings.Count(out, "No recent quiz attempts."))
	})

	t.Run("Run", func(t *testing.T) {
		res := g.Run(ctx, report.KindUserCSV)
		require.True(t, res.OK(), res.Message)
		assert.Contains(t, res.Content, "active@example.com")
	})
}
