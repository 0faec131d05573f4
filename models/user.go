package models

import "time"

// User represents a registered account. Passwords are stored as bcrypt
// hashes only; Token holds the current opaque session credential and is
// overwritten on every login, so at most one token is valid per user.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Token        string    `gorm:"size:64;index" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Posts        []Post    `json:"-"`
}
