package attempt

import (
	"time"

	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/user"
)

// Score rows are append only: every attempt adds one.
type Score struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	User             user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	QuizID           uint      `gorm:"not null;index" json:"quiz_id"`
	Quiz             quiz.Quiz `gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Score            int       `gorm:"not null" json:"score"`
	AttemptTimestamp time.Time `gorm:"not null;index" json:"attempt_timestamp"`
}

// UserAnswer holds the latest answer a user gave to one question of a quiz.
type UserAnswer struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	UserID           uint          `gorm:"not null;uniqueIndex:idx_user_quiz_question" json:"user_id"`
	User             user.User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	QuizID           uint          `gorm:"not null;uniqueIndex:idx_user_quiz_question" json:"quiz_id"`
	Quiz             quiz.Quiz     `gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	QuestionID       uint          `gorm:"not null;uniqueIndex:idx_user_quiz_question" json:"question_id"`
	Question         quiz.Question `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SelectedOption   int           `gorm:"not null" json:"selected_option"`
	AttemptTimestamp time.Time     `gorm:"not null" json:"attempt_timestamp"`
}
