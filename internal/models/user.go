package models

import (
	"time"
)

// DefaultAvatar is the sentinel profile image every new account starts with.
const DefaultAvatar = "default.jpg"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Password  string    `gorm:"size:60;not null" json:"-"` // bcrypt hash, never the plaintext
	ImageFile string    `gorm:"size:64;not null;default:'default.jpg'" json:"image_file"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt for hard delete; accounts are never removed
}
