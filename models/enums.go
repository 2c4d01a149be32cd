package models

// ClaimStatus is the workflow state of a santunan claim. The wire values
// are stored verbatim in the database and returned unchanged in responses.
type ClaimStatus string

const (
	ClaimStatusPending    ClaimStatus = "pending"
	ClaimStatusVerified   ClaimStatus = "verified"
	ClaimStatusProcessing ClaimStatus = "processing"
	ClaimStatusApproved   ClaimStatus = "approved"
	ClaimStatusRejected   ClaimStatus = "rejected"
	ClaimStatusCompleted  ClaimStatus = "completed"
)

// ClaimStatuses lists every valid claim status in workflow order.
var ClaimStatuses = []ClaimStatus{
	ClaimStatusPending,
	ClaimStatusVerified,
	ClaimStatusProcessing,
	ClaimStatusApproved,
	ClaimStatusRejected,
	ClaimStatusCompleted,
}

func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusVerified, ClaimStatusProcessing,
		ClaimStatusApproved, ClaimStatusRejected, ClaimStatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further workflow transition is expected.
func (s ClaimStatus) Terminal() bool {
	return s == ClaimStatusCompleted || s == ClaimStatusRejected
}

// VerificationStatus is the review state of a standalone document verification.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

var VerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusApproved,
	VerificationStatusRejected,
}

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	}
	return false
}

// DocumentType tags an uploaded supporting document.
type DocumentType string

const (
	DocumentKTP           DocumentType = "ktp"
	DocumentPoliceReport  DocumentType = "police_report"
	DocumentSTNK          DocumentType = "stnk"
	DocumentMedicalReport DocumentType = "medical_report"
	DocumentBankBook      DocumentType = "bank_book"
)

// ClaimDocumentTypes is the closed set of document types a claim accepts.
var ClaimDocumentTypes = []DocumentType{
	DocumentKTP, DocumentPoliceReport, DocumentSTNK, DocumentMedicalReport, DocumentBankBook,
}

// VerificationDocumentTypes is the closed set for verifications (no bank book).
var VerificationDocumentTypes = []DocumentType{
	DocumentKTP, DocumentPoliceReport, DocumentSTNK, DocumentMedicalReport,
}

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
