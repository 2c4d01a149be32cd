package models

import "time"

// Notification is a pull-retrieved message for one user. ReferenceID is a
// weak reference to the originating claim or verification; deleting that
// entity does not touch notifications.
type Notification struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"userId"`
	Type        string     `gorm:"size:64;not null" json:"type"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	ReferenceID string     `gorm:"size:32" json:"referenceId"`
	IsRead      bool       `gorm:"default:false;index" json:"isRead"`
	ReadAt      *time.Time `json:"readAt"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}
