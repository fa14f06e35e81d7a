package database

import (
	"fmt"

	"github.com/saulo-duarte/quizmaster/internal/attempt"
	"github.com/saulo-duarte/quizmaster/internal/chapter"
	"github.com/saulo-duarte/quizmaster/internal/quiz"
	"github.com/saulo-duarte/quizmaster/internal/subject"
	"github.com/saulo-duarte/quizmaster/internal/user"
	"gorm.io/gorm"
)

// models lists every table parents first, the order foreign keys need.
func models() []interface{} {
	return []interface{}{
		&user.User{},
		&user.Admin{},
		&subject.Subject{},
		&chapter.Chapter{},
		&quiz.Quiz{},
		&quiz.Question{},
		&attempt.Score{},
		&attempt.UserAnswer{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DropAll removes every table, children first.
func DropAll(db *gorm.DB) error {
	all := models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
