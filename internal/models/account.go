package models

import "time"

// Account represents a registered user account.
// Accounts are created once at signup and only ever read afterwards.
type Account struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Salt         string    `gorm:"not null"` // per-account, regenerated each signup
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName maps the model to the users table
func (Account) TableName() string {
	return "users"
}
