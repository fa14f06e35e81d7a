package quiz

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

type QuizRepository interface {
	Create(ctx context.Context, q *Quiz) error
	GetByID(ctx context.Context, id uint) (*Quiz, error)
	ListByChapter(ctx context.Context, chapterID uint, query string) ([]Quiz, error)
	ListAll(ctx context.Context) ([]Quiz, error)
	TitleTaken(ctx context.Context, chapterID uint, title string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, q *Quiz) error
	Delete(ctx context.Context, id uint) error

	AddQuestions(ctx context.Context, questions []*Question) error
	GetQuestion(ctx context.Context, id uint) (*Question, error)
	ListQuestionsByQuiz(ctx context.Context, quizID uint) ([]Question, error)
	UpdateQuestion(ctx context.Context, q *Question) error
	DeleteQuestion(ctx context.Context, id uint) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(q).Error
}

func (r *quizRepository) GetByID(ctx context.Context, id uint) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ListByChapter(ctx context.Context, chapterID uint, query string) ([]Quiz, error) {
	var quizzes []Quiz
	tx := r.db.WithContext(ctx).Where("chapter_id = ?", chapterID).Order("id ASC")
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if err := tx.Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) ListAll(ctx context.Context) ([]Quiz, error) {
	var quizzes []Quiz
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) TitleTaken(ctx context.Context, chapterID uint, title string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Quiz{}).
		Where("chapter_id = ? AND title = ? AND id <> ?", chapterID, title, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *quizRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Quiz{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *quizRepository) Update(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(q).Error
}

func (r *quizRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Quiz{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *quizRepository) AddQuestions(ctx context.Context, questions []*Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *quizRepository) GetQuestion(ctx context.Context, id uint) (*Question, error) {
	var q Question
	if err := r.db.WithContext(ctx).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) ListQuestionsByQuiz(ctx context.Context, quizID uint) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) UpdateQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *quizRepository) DeleteQuestion(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
