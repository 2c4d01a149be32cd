package models

import "time"

// TimelineEntry is one append-only audit line in a claim's history.
// Entries are never updated or deleted individually; the whole set goes
// away with the claim.
type TimelineEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClaimID     string    `gorm:"size:16;index;not null" json:"claimId"`
	StatusLabel string    `gorm:"column:status;size:64;not null" json:"status"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName pins the claim_timeline table name.
func (TimelineEntry) TableName() string { return "claim_timeline" }
