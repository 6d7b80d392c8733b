package models

import (
	"time"
)

// User is a registered account. Password holds the bcrypt hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// UserSummary is the public projection of a user embedded in profiles.
type UserSummary struct {
	ID     uint   `gorm:"primaryKey" json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// TableName points the projection at the users table.
func (UserSummary) TableName() string {
	return "users"
}
