package models

import "time"

// User model
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Name           string  `gorm:"size:255;not null"`
	Email          *string `gorm:"size:255;uniqueIndex"` // optional, unique when present
	Phone          string  `gorm:"size:64;uniqueIndex;not null"`
	HashedPassword []byte  `gorm:"not null" json:"-"`
	Role           string  `gorm:"size:16;not null;default:user"`
}
