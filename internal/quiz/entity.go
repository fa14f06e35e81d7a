package quiz

import (
	"time"

	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ChapterID    uint            `gorm:"not null;uniqueIndex:idx_quiz_chapter_title" json:"chapter_id"`
	Chapter      chapter.Chapter `gorm:"foreignKey:ChapterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title        string          `gorm:"size:255;not null;uniqueIndex:idx_quiz_chapter_title" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	TimeDuration int             `gorm:"not null" json:"time_duration"`
	DateOfQuiz   datatypes.Date  `gorm:"not null" json:"date_of_quiz"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuizID        uint      `gorm:"not null;index" json:"quiz_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	Option1       string    `gorm:"type:text;not null" json:"option1"`
	Option2       string    `gorm:"type:text;not null" json:"option2"`
	Option3       string    `gorm:"type:text" json:"option3"`
	Option4       string    `gorm:"type:text" json:"option4"`
	CorrectOption int       `gorm:"not null" json:"correct_option"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
