package dashboard

import (
	"context"

	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"gorm.io/gorm"
)

type ScoreTotals struct {
	Attempts int64
	Total    int64
}

type Repository interface {
	Count(ctx context.Context, model interface{}) (int64, error)
	ScoreAggregate(ctx context.Context, userID *uint) (ScoreTotals, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Count(ctx context.Context, model interface{}) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Count(&n).Error
	return n, err
}

// ScoreAggregate sums every score, or only those of userID when it is set.
func (r *repository) ScoreAggregate(ctx context.Context, userID *uint) (ScoreTotals, error) {
	var agg ScoreTotals
	tx := r.db.WithContext(ctx).
		Model(&attempt.Score{}).
		Select("COUNT(*) AS attempts, COALESCE(SUM(score), 0) AS total")
	if userID != nil {
		tx = tx.Where("user_id = ?", *userID)
	}
	err := tx.Scan(&agg).Error
	return agg, err
}
