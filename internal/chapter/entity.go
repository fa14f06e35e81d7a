package chapter

import (
	"time"

	"github.com/saulo-duarte/quizmaster/internal/subject"
)

type Chapter struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SubjectID   uint            `gorm:"not null;uniqueIndex:idx_chapter_subject_name" json:"subject_id"`
	Subject     subject.Subject `gorm:"foreignKey:SubjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name        string          `gorm:"size:255;not null;uniqueIndex:idx_chapter_subject_name" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
