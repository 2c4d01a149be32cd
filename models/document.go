package models

import "time"

// ClaimDocument is an uploaded supporting file owned by exactly one claim.
// Rows cascade away with their claim; the backing file is removed best-effort.
type ClaimDocument struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ClaimID      string       `gorm:"size:16;index;not null" json:"claimId"`
	DocumentType DocumentType `gorm:"size:32;not null" json:"documentType"`
	FileName     string       `gorm:"size:255;not null" json:"fileName"`
	FilePath     string       `gorm:"size:512;not null" json:"filePath"`
	FileSize     int64        `json:"fileSize"`
	MimeType     string       `gorm:"size:128" json:"mimeType"`
	UploadedAt   time.Time    `gorm:"autoCreateTime" json:"uploadedAt"`
}

// VerificationDocument mirrors ClaimDocument for verification records.
type VerificationDocument struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	VerificationID string       `gorm:"size:16;index;not null" json:"verificationId"`
	DocumentType   DocumentType `gorm:"size:32;not null" json:"documentType"`
	FileName       string       `gorm:"size:255;not null" json:"fileName"`
	FilePath       string       `gorm:"size:512;not null" json:"filePath"`
	FileSize       int64        `json:"fileSize"`
	MimeType       string       `gorm:"size:128" json:"mimeType"`
	UploadedAt     time.Time    `gorm:"autoCreateTime" json:"uploadedAt"`
}
