package user

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Email         string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash  string          `gorm:"not null" json:"-"`
	FullName      string          `gorm:"size:255;not null" json:"full_name"`
	Qualification string          `gorm:"size:255" json:"qualification"`
	DateOfBirth   *datatypes.Date `json:"dob"`
	Role          string          `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Admin accounts live apart from users and always carry the admin role.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
