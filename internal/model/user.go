package model

import "time"

// User represents a registered account. Username uniqueness is enforced
// by the database; IsAdmin can only be set by the bootstrap seeder.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:20;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Articles []Article `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
