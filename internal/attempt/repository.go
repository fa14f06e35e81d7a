package attempt

import (
	"context"
	"errors"
	"time"

	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// ScoreRow is a score joined with the title of its quiz. QuizTitle is nil
// when the quiz row is gone.
type ScoreRow struct {
	ID               uint
	UserID           uint
	QuizID           uint
	Score            int
	AttemptTimestamp time.Time
	QuizTitle        *string
}

type AttemptRepository interface {
	// WithTx returns a repository bound to tx.
	WithTx(tx *gorm.DB) AttemptRepository
	QuizExists(ctx context.Context, quizID uint) (bool, error)
	QuestionsOf(ctx context.Context, quizID uint) ([]quiz.Question, error)
	FindQuestion(ctx context.Context, id uint) (*quiz.Question, error)
	UpsertAnswer(ctx context.Context, a *UserAnswer) error
	FindAnswer(ctx context.Context, userID, quizID, questionID uint) (*UserAnswer, error)
	CreateScore(ctx context.Context, s *Score) error
	ListScoresByUser(ctx context.Context, userID uint) ([]ScoreRow, error)
	ScoresBetween(ctx context.Context, from, to time.Time) ([]ScoreRow, error)
	StatsByUser(ctx context.Context) ([]UserScoreStats, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) QuizExists(ctx context.Context, quizID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&quiz.Quiz{}).Where("id = ?", quizID).Count(&n).Error
	return n > 0, err
}

func (r *attemptRepository) QuestionsOf(ctx context.Context, quizID uint) ([]quiz.Question, error) {
	var questions []quiz.Question
	if err := r.db.WithContext(ctx).Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *attemptRepository) FindQuestion(ctx context.Context, id uint) (*quiz.Question, error) {
	var q quiz.Question
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// UpsertAnswer inserts the answer or, when (user, quiz, question) already has
// one, overwrites its option and timestamp.
func (r *attemptRepository) UpsertAnswer(ctx context.Context, a *UserAnswer) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"selected_option", "attempt_timestamp"}),
		}).
		Create(a).Error
}

func (r *attemptRepository) FindAnswer(ctx context.Context, userID, quizID, questionID uint) (*UserAnswer, error) {
	var a UserAnswer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ? AND question_id = ?", userID, quizID, questionID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) CreateScore(ctx context.Context, s *Score) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *attemptRepository) scoresWithTitles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("scores").
		Select("scores.*, quizzes.title AS quiz_title").
		Joins("LEFT JOIN quizzes ON quizzes.id = scores.quiz_id")
}

func (r *attemptRepository) ListScoresByUser(ctx context.Context, userID uint) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := r.scoresWithTitles(ctx).
		Where("scores.user_id = ?", userID).
		Order("scores.attempt_timestamp ASC, scores.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *attemptRepository) ScoresBetween(ctx context.Context, from, to time.Time) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := r.scoresWithTitles(ctx).
		Where("scores.attempt_timestamp >= ? AND scores.attempt_timestamp <= ?", from, to).
		Order("scores.user_id ASC, scores.attempt_timestamp ASC, scores.id ASC").
		Scan(&rows).Error
	return rows, err
}

type UserScoreStats struct {
	UserID   uint
	Attempts int64
	Total    int64
}

func (r *attemptRepository) StatsByUser(ctx context.Context) ([]UserScoreStats, error) {
	var rows []UserScoreStats
	err := r.db.WithContext(ctx).
		Model(&Score{}).
		Select("user_id, COUNT(*) AS attempts, COALESCE(SUM(score), 0) AS total").
		Group("user_id").
		Scan(&rows).Error
	return rows, err
}
