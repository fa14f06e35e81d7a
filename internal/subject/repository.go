package subject

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type SubjectRepository interface {
	Create(ctx context.Context, s *Subject) error
	FindByID(ctx context.Context, id uint) (*Subject, error)
	List(ctx context.Context, query string) ([]Subject, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, s *Subject) error
	Delete(ctx context.Context, id uint) error
}

type subjectRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, s *Subject) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subjectRepository) FindByID(ctx context.Context, id uint) (*Subject, error) {
	var s Subject
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List filters on name or description, case-insensitively, when query is set.
func (r *subjectRepository) List(ctx context.Context, query string) ([]Subject, error) {
	var subjects []Subject
	tx := r.db.WithContext(ctx).Order("id ASC")
	if q := strings.TrimSpace(query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if err := tx.Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Subject{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *subjectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Subject{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *subjectRepository) Update(ctx context.Context, s *Subject) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Subject{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
