package models

import "time"

// Verification is a standalone pre-check of claimant documents. It is not
// linked to any claim and has no timeline; review metadata on the row itself
// is the only audit trail.
type Verification struct {
	ID       string  `gorm:"primaryKey;size:16" json:"id"`
	FullName string  `gorm:"size:255;not null" json:"fullName"`
	NIK      string  `gorm:"column:nik;size:32;index;not null" json:"nik"`
	Phone    string  `gorm:"size:64;not null" json:"phone"`
	Email    *string `gorm:"size:255" json:"email"`

	// PreCheckResults holds an opaque JSON payload; reads are lenient and
	// fall back to the raw text when it does not parse.
	PreCheckResults string `gorm:"type:text" json:"-"`

	Status     VerificationStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	AdminNotes string             `gorm:"type:text" json:"adminNotes"`
	ReviewedBy string             `gorm:"size:255" json:"reviewedBy"`
	ReviewedAt *time.Time         `json:"reviewedAt"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Documents []VerificationDocument `gorm:"foreignKey:VerificationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"documents,omitempty"`
}
