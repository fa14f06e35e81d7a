package chapter

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type ChapterRepository interface {
	Create(ctx context.Context, c *Chapter) error
	FindByID(ctx context.Context, id uint) (*Chapter, error)
	ListBySubject(ctx context.Context, subjectID uint, query string) ([]Chapter, error)
	NameTaken(ctx context.Context, subjectID uint, name string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, c *Chapter) error
	Delete(ctx context.Context, id uint) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(ctx context.Context, c *Chapter) error {
	return r.db.WithContext(ctx).Omit("Subject").Create(c).Error
}

func (r *chapterRepository) FindByID(ctx context.Context, id uint) (*Chapter, error) {
	var c Chapter
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *chapterRepository) ListBySubject(ctx context.Context, subjectID uint, query string) ([]Chapter, error) {
	var chapters []Chapter
	tx := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).Order("id ASC")
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if err := tx.Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) NameTaken(ctx context.Context, subjectID uint, name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Chapter{}).
		Where("subject_id = ? AND name = ? AND id <> ?", subjectID, name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *chapterRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Chapter{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *chapterRepository) Update(ctx context.Context, c *Chapter) error {
	return r.db.WithContext(ctx).Omit("Subject").Save(c).Error
}

func (r *chapterRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Chapter{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
