package models

import "time"

// EmailCode is a pending login verification code. Only the bcrypt hash is
// stored; one row per email (a new request replaces the old code).
type EmailCode struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	CodeHash  string    `json:"-" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}
