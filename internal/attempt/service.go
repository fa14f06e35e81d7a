package attempt

import (
	"context"
	"errors"
	"time"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
	"github.com/saulo-duarte/quizmaster/internal/cache"
	"github.com/saulo-duarte/quizmaster/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const UnknownQuizTitle = "Unknown Quiz"

var (
	ErrQuizAndAnswersRequired = apperror.Validation("Quiz ID and answers are required")
	ErrSelectedOption         = apperror.Validation("selected_option must be 1, 2, 3, or 4")
	ErrNegativeScore          = apperror.Validation("score must not be negative")
	ErrQuizNotFound           = apperror.NotFound("Quiz not found")
	ErrQuizOrQuestionNotFound = apperror.NotFound("Quiz or Question not found")
	ErrAnswerNotFound         = apperror.NotFound("Answer not found")
)

type AttemptService interface {
	SubmitAttempt(ctx context.Context, userID uint, req SubmitAttemptRequest) (*SubmitAttemptResponse, error)
	RecordScore(ctx context.Context, userID, quizID uint, score int) (uint, error)
	SaveAnswer(ctx context.Context, userID uint, req SaveAnswerRequest) (*AnswerResponse, error)
	GetAnswer(ctx context.Context, userID, quizID, questionID uint) (*AnswerResponse, error)
	ListScores(ctx context.Context, userID uint) ([]ScoreResponse, error)
}

type attemptService struct {
	repo  AttemptRepository
	db    *gorm.DB
	cache cache.Invalidator
	now   func() time.Time
}

func NewService(db *gorm.DB, repo AttemptRepository, inv cache.Invalidator) AttemptService {
	return &attemptService{
		repo:  repo,
		db:    db,
		cache: inv,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SubmitAttempt grades a submission against the stored answer key. Answers for
// questions outside the quiz are ignored; a question answered twice counts
// once, with the last answer winning. Answers and the new score are written
// in one transaction.
func (s *attemptService) SubmitAttempt(ctx context.Context, userID uint, req SubmitAttemptRequest) (*SubmitAttemptResponse, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"user_id": userID,
		"quiz_id": req.QuizID,
	})

	if req.QuizID == 0 || len(req.Answers) == 0 {
		return nil, ErrQuizAndAnswersRequired
	}

	// last entry per question wins; keep first-seen order for the writes
	order := make([]uint, 0, len(req.Answers))
	selected := make(map[uint]int, len(req.Answers))
	for _, a := range req.Answers {
		if _, seen := selected[a.QuestionID]; !seen {
			order = append(order, a.QuestionID)
		}
		selected[a.QuestionID] = a.SelectedOption
	}

	var resp *SubmitAttemptResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ok, err := repo.QuizExists(ctx, req.QuizID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrQuizNotFound
		}

		questions, err := repo.QuestionsOf(ctx, req.QuizID)
		if err != nil {
			return err
		}
		answerKey := make(map[uint]int, len(questions))
		for _, q := range questions {
			answerKey[q.ID] = q.CorrectOption
		}

		// answers outside the quiz are dropped before their options are checked
		accepted := make([]uint, 0, len(order))
		for _, questionID := range order {
			if _, ok := answerKey[questionID]; !ok {
				continue
			}
			if !validOption(selected[questionID]) {
				return ErrSelectedOption
			}
			accepted = append(accepted, questionID)
		}

		now := s.now()
		correct := 0
		for _, questionID := range accepted {
			want := answerKey[questionID]
			option := selected[questionID]
			if err := repo.UpsertAnswer(ctx, &UserAnswer{
				UserID:           userID,
				QuizID:           req.QuizID,
				QuestionID:       questionID,
				SelectedOption:   option,
				AttemptTimestamp: now,
			}); err != nil {
				return err
			}
			if option == want {
				correct++
			}
		}

		if err := repo.CreateScore(ctx, &Score{
			UserID:           userID,
			QuizID:           req.QuizID,
			Score:            correct,
			AttemptTimestamp: now,
		}); err != nil {
			return err
		}

		resp = &SubmitAttemptResponse{
			Message:             "Quiz submitted successfully!",
			FinalScore:          correct,
			CorrectAnswersCount: correct,
			TotalQuestions:      len(questions),
		}
		return nil
	})
	if err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			return nil, err
		}
		log.WithError(err).Error("Quiz submission failed")
		return nil, apperror.Internal("Quiz submission failed internally", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagScores, cache.TagStats)
	log.WithFields(logrus.Fields{
		"score":           resp.FinalScore,
		"total_questions": resp.TotalQuestions,
	}).Info("Quiz attempt graded")
	return resp, nil
}

func (s *attemptService) RecordScore(ctx context.Context, userID, quizID uint, score int) (uint, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	if score < 0 {
		return 0, ErrNegativeScore
	}
	if err := s.requireQuiz(ctx, quizID); err != nil {
		return 0, err
	}

	row := &Score{UserID: userID, QuizID: quizID, Score: score, AttemptTimestamp: s.now()}
	if err := s.repo.CreateScore(ctx, row); err != nil {
		log.WithError(err).Error("Failed to save score")
		return 0, apperror.Internal("failed to save score", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagScores, cache.TagStats)
	return row.ID, nil
}

func (s *attemptService) SaveAnswer(ctx context.Context, userID uint, req SaveAnswerRequest) (*AnswerResponse, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"quiz_id":     req.QuizID,
		"question_id": req.QuestionID,
	})

	if !validOption(req.SelectedOption) {
		return nil, ErrSelectedOption
	}

	q, err := s.repo.FindQuestion(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrQuizOrQuestionNotFound
		}
		return nil, apperror.Internal("failed to load question", err)
	}
	if q.QuizID != req.QuizID {
		return nil, ErrQuizOrQuestionNotFound
	}

	answer := &UserAnswer{
		UserID:           userID,
		QuizID:           req.QuizID,
		QuestionID:       req.QuestionID,
		SelectedOption:   req.SelectedOption,
		AttemptTimestamp: s.now(),
	}
	if err := s.repo.UpsertAnswer(ctx, answer); err != nil {
		log.WithError(err).Error("Failed to save answer")
		return nil, apperror.Internal("failed to save answer", err)
	}

	// the upsert does not report the id of an updated row
	stored, err := s.repo.FindAnswer(ctx, userID, req.QuizID, req.QuestionID)
	if err != nil {
		return nil, apperror.Internal("failed to load answer", err)
	}

	cache.Invalidate(ctx, s.cache, cache.TagScores, cache.TagStats)
	resp := toAnswerResponse(stored)
	return &resp, nil
}

func (s *attemptService) GetAnswer(ctx context.Context, userID, quizID, questionID uint) (*AnswerResponse, error) {
	a, err := s.repo.FindAnswer(ctx, userID, quizID, questionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, apperror.Internal("failed to load answer", err)
	}
	resp := toAnswerResponse(a)
	return &resp, nil
}

func (s *attemptService) ListScores(ctx context.Context, userID uint) ([]ScoreResponse, error) {
	rows, err := s.repo.ListScoresByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to list scores", err)
	}
	out := make([]ScoreResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ScoreResponse{
			ID:               row.ID,
			UserID:           row.UserID,
			QuizID:           row.QuizID,
			Score:            row.Score,
			AttemptTimestamp: row.AttemptTimestamp,
			QuizTitle:        TitleOrUnknown(row.QuizTitle),
		})
	}
	return out, nil
}

func (s *attemptService) requireQuiz(ctx context.Context, quizID uint) error {
	ok, err := s.repo.QuizExists(ctx, quizID)
	if err != nil {
		return apperror.Internal("failed to load quiz", err)
	}
	if !ok {
		return ErrQuizNotFound
	}
	return nil
}

func TitleOrUnknown(title *string) string {
	if title == nil || *title == "" {
		return UnknownQuizTitle
	}
	return *title
}

func validOption(option int) bool {
	return option >= 1 && option <= 4
}

func toAnswerResponse(a *UserAnswer) AnswerResponse {
	return AnswerResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		QuizID:           a.QuizID,
		QuestionID:       a.QuestionID,
		SelectedOption:   a.SelectedOption,
		AttemptTimestamp: a.AttemptTimestamp,
	}
}
