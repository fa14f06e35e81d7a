package dashboard

import (
	"context"
	"math"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/saulo-duarte/quizmaster/internal/user"
)

type Service interface {
	AdminStats(ctx context.Context) (*AdminStats, error)
	UserStats(ctx context.Context, userID uint) (*UserStats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AdminStats(ctx context.Context) (*AdminStats, error) {
	log := config.WithContext(ctx)

	stats := &AdminStats{}
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&user.User{}, &stats.TotalUsers},
		{&subject.Subject{}, &stats.TotalSubjects},
		{&chapter.Chapter{}, &stats.TotalChapters},
		{&quiz.Quiz{}, &stats.TotalQuizzes},
		{&quiz.Question{}, &stats.TotalQuestions},
	}
	for _, c := range counts {
		n, err := s.repo.Count(ctx, c.model)
		if err != nil {
			log.WithError(err).Error("Failed to count rows for admin dashboard")
			return nil, apperror.Internal("failed to load dashboard stats", err)
		}
		*c.dst = n
	}

	agg, err := s.repo.ScoreAggregate(ctx, nil)
	if err != nil {
		return nil, apperror.Internal("failed to load dashboard stats", err)
	}
	stats.TotalScores = agg.Attempts
	stats.AverageScore = Average(agg.Total, agg.Attempts)
	return stats, nil
}

func (s *service) UserStats(ctx context.Context, userID uint) (*UserStats, error) {
	agg, err := s.repo.ScoreAggregate(ctx, &userID)
	if err != nil {
		return nil, apperror.Internal("failed to load dashboard stats", err)
	}
	return &UserStats{
		TotalQuizzesAttempted: agg.Attempts,
		AverageUserScore:      Average(agg.Total, agg.Attempts),
	}, nil
}

// Average is total/count rounded to two decimals, 0 when count is 0.
func Average(total, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(count)*100) / 100
}
