package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim is a santunan (compensation) request. The primary key is the
// generated KLM-<year>-<nnnn> identifier; uniqueness is enforced by the
// primary key constraint, not by the generator.
type Claim struct {
	ID     string `gorm:"primaryKey;size:16" json:"id"`
	UserID *uint  `gorm:"index" json:"userId"` // nil for anonymous submissions

	FullName string `gorm:"size:255;not null" json:"fullName"`
	NIK      string `gorm:"column:nik;size:32;index;not null" json:"nik"`
	Phone    string `gorm:"size:64;not null" json:"phone"`
	Address  string `gorm:"size:512;not null" json:"address"`

	IncidentDate        time.Time `gorm:"not null" json:"incidentDate"`
	IncidentTime        string    `gorm:"size:16" json:"incidentTime"`
	IncidentLocation    string    `gorm:"size:512;not null" json:"incidentLocation"`
	IncidentDescription string    `gorm:"type:text;not null" json:"incidentDescription"`
	VehicleType         string    `gorm:"size:64" json:"vehicleType"`
	VehicleNumber       string    `gorm:"size:32" json:"vehicleNumber"`

	// Bank destination for the payout, mandatory at creation (branch optional).
	BankName          string `gorm:"size:128;not null" json:"bankName"`
	BankBranch        string `gorm:"size:128" json:"bankBranch"`
	AccountNumber     string `gorm:"size:64;not null" json:"accountNumber"`
	AccountHolderName string `gorm:"size:255;not null" json:"accountHolderName"`

	HospitalName         string           `gorm:"size:255" json:"hospitalName"`
	TreatmentDescription string           `gorm:"type:text" json:"treatmentDescription"`
	EstimatedCost        *decimal.Decimal `gorm:"type:numeric(18,2)" json:"estimatedCost"`

	// Transfer fields populate only via the transfer-proof path, which also
	// forces status to completed.
	TransferProofPath string           `gorm:"size:512" json:"transferProofPath"`
	TransferAmount    *decimal.Decimal `gorm:"type:numeric(18,2)" json:"transferAmount"`
	TransferDate      string           `gorm:"size:16" json:"transferDate"`
	TransferNotes     string           `gorm:"type:text" json:"transferNotes"`

	Status     ClaimStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	AdminNotes string      `gorm:"type:text" json:"adminNotes"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submittedAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Documents []ClaimDocument `gorm:"foreignKey:ClaimID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"documents,omitempty"`
	Timeline  []TimelineEntry `gorm:"foreignKey:ClaimID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"timeline,omitempty"`
}
