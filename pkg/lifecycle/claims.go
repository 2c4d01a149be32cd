package lifecycle

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"santunan/models"
	"santunan/pkg/docstore"
	"santunan/pkg/notify"
)

const claimUploadKind = "claims"

// ClaimService owns the claim state machine and orchestrates document
// storage, the audit timeline, and notification emission around it.
type ClaimService struct {
	db       *gorm.DB
	files    *docstore.Store
	notifier *notify.Emitter
	validate *validator.Validate
	log      logrus.FieldLogger

	// Strict enforces workflow adjacency on Transition. Off by default:
	// the live behavior accepts any valid status as a target.
	Strict bool
}

func NewClaimService(db *gorm.DB, files *docstore.Store, notifier *notify.Emitter, log logrus.FieldLogger) *ClaimService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ClaimService{
		db:       db,
		files:    files,
		notifier: notifier,
		validate: validator.New(),
		log:      log,
	}
}

// ClaimInput is everything a claimant submits besides the document files.
// IncidentDate is a 2006-01-02 date string as it arrives on the wire.
type ClaimInput struct {
	UserID *uint

	FullName string `validate:"required"`
	NIK      string `validate:"required"`
	Phone    string `validate:"required"`
	Address  string `validate:"required"`

	IncidentDate        string `validate:"required"`
	IncidentTime        string
	IncidentLocation    string `validate:"required"`
	IncidentDescription string `validate:"required"`
	VehicleType         string
	VehicleNumber       string

	BankName          string `validate:"required"`
	BankBranch        string
	AccountNumber     string `validate:"required"`
	AccountHolderName string `validate:"required"`

	HospitalName         string
	TreatmentDescription string
	EstimatedCost        *decimal.Decimal
}

var bankFields = map[string]bool{
	"BankName":          true,
	"AccountNumber":     true,
	"AccountHolderName": true,
}

func (s *ClaimService) validateClaimInput(in ClaimInput) (time.Time, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if bankFields[fe.StructField()] {
					return time.Time{}, validationErr("Informasi rekening bank wajib diisi (nama bank, nomor rekening, nama pemilik rekening)")
				}
			}
		}
		return time.Time{}, validationErr("Mohon lengkapi semua field yang wajib diisi")
	}
	incidentDate, err := time.Parse("2006-01-02", in.IncidentDate)
	if err != nil {
		return time.Time{}, validationErr("Format tanggal kejadian tidak valid")
	}
	return incidentDate, nil
}

// requiredClaimDocuments must all be present at creation.
var requiredClaimDocuments = []models.DocumentType{
	models.DocumentKTP,
	models.DocumentPoliceReport,
	models.DocumentBankBook,
}

// Create validates the submission, persists the claim with its documents,
// appends the initial timeline entry, and notifies the owning user when the
// submission is attributable to one. The returned claim carries the
// generated identifier and the initial pending status.
func (s *ClaimService) Create(in ClaimInput, uploads map[models.DocumentType]*multipart.FileHeader) (*models.Claim, error) {
	incidentDate, err := s.validateClaimInput(in)
	if err != nil {
		return nil, err
	}
	for _, required := range requiredClaimDocuments {
		if uploads[required] == nil {
			if required == models.DocumentBankBook {
				return nil, validationErr("Foto/Scan Buku Tabungan wajib diupload")
			}
			return nil, validationErr("KTP dan Surat Keterangan Polisi wajib diupload")
		}
	}
	for docType, fh := range uploads {
		if fh == nil {
			continue
		}
		if !validClaimDocumentType(docType) {
			return nil, validationErr("Jenis dokumen tidak dikenal: " + string(docType))
		}
		if err := s.files.Check(fh); err != nil {
			return nil, validationErr(err.Error())
		}
	}

	// Files go to disk first so the row inserts can run in one transaction.
	stored := make(map[models.DocumentType]*docstore.Stored, len(uploads))
	for docType, fh := range uploads {
		if fh == nil {
			continue
		}
		st, err := s.files.Save(fh, claimUploadKind)
		if err != nil {
			s.discardStored(stored)
			return nil, storageErr("save document", err)
		}
		stored[docType] = st
	}

	claim := models.Claim{
		UserID:               in.UserID,
		FullName:             in.FullName,
		NIK:                  in.NIK,
		Phone:                in.Phone,
		Address:              in.Address,
		IncidentDate:         incidentDate,
		IncidentTime:         in.IncidentTime,
		IncidentLocation:     in.IncidentLocation,
		IncidentDescription:  in.IncidentDescription,
		VehicleType:          in.VehicleType,
		VehicleNumber:        in.VehicleNumber,
		BankName:             in.BankName,
		BankBranch:           in.BankBranch,
		AccountNumber:        in.AccountNumber,
		AccountHolderName:    in.AccountHolderName,
		HospitalName:         in.HospitalName,
		TreatmentDescription: in.TreatmentDescription,
		EstimatedCost:        in.EstimatedCost,
		Status:               models.ClaimStatusPending,
	}

	// The generator does not pre-check uniqueness; a duplicate key fails the
	// insert and gets a fresh suffix, bounded by idInsertAttempts.
	var insertErr error
	for attempt := 0; attempt < idInsertAttempts; attempt++ {
		claim.ID = NewClaimID(time.Now())
		insertErr = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&claim).Error; err != nil {
				return err
			}
			for docType, st := range stored {
				doc := models.ClaimDocument{
					ClaimID:      claim.ID,
					DocumentType: docType,
					FileName:     st.FileName,
					FilePath:     st.Path,
					FileSize:     st.Size,
					MimeType:     st.MimeType,
				}
				if err := tx.Create(&doc).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if insertErr == nil || !isUniqueViolation(insertErr) {
			break
		}
	}
	if insertErr != nil {
		s.discardStored(stored)
		return nil, storageErr("create claim", insertErr)
	}

	s.appendTimeline(claim.ID, "Pengajuan Diterima", "Klaim berhasil diajukan dan menunggu verifikasi dokumen")
	if claim.UserID != nil {
		s.notifier.Emit(*claim.UserID, notify.ClaimSubmitted, claim.ID, notify.Context{ClaimID: claim.ID})
	}
	return &claim, nil
}

func validClaimDocumentType(t models.DocumentType) bool {
	for _, v := range models.ClaimDocumentTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (s *ClaimService) discardStored(stored map[models.DocumentType]*docstore.Stored) {
	for _, st := range stored {
		if err := s.files.Remove(st.Path); err != nil {
			s.log.WithField("path", st.Path).WithError(err).Warn("discard stored file failed")
		}
	}
}

// appendTimeline is best-effort: a failed audit write is logged but never
// fails the operation whose primary write already committed.
func (s *ClaimService) appendTimeline(claimID, label, description string) {
	entry := models.TimelineEntry{ClaimID: claimID, StatusLabel: label, Description: description}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.WithFields(logrus.Fields{
			"claim_id": claimID,
			"status":   label,
		}).WithError(err).Warn("timeline write failed")
	}
}

// Transition moves a claim to targetStatus and records the change on the
// timeline. Notification emission follows the status-event mapping and only
// happens for claims with an owning user. Calling it twice with the same
// target appends two timeline entries and two notifications; it is not
// semantically idempotent.
func (s *ClaimService) Transition(claimID string, target models.ClaimStatus, adminNotes string) error {
	if !target.Valid() {
		return validationErr("Status tidak valid")
	}
	var claim models.Claim
	if err := s.db.First(&claim, "id = ?", claimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageErr("load claim", err)
	}
	if s.Strict && !allowedTransition(claim.Status, target) {
		return validationErr("Transisi status " + string(claim.Status) + " -> " + string(target) + " tidak diizinkan")
	}

	updates := map[string]any{"status": target, "admin_notes": adminNotes}
	if err := s.db.Model(&claim).Updates(updates).Error; err != nil {
		return storageErr("update claim status", err)
	}

	s.appendTimeline(claim.ID, statusLabel(target), timelineDescription(target, adminNotes))
	if claim.UserID != nil {
		if event := statusEvents[target]; event != "" {
			s.notifier.Emit(*claim.UserID, event, claim.ID, notify.Context{ClaimID: claim.ID, Reason: adminNotes})
		}
	}
	return nil
}

// RecordTransferProof stores the payout evidence and forces the claim to
// completed, bypassing Transition. This path deliberately emits no
// notification; only the fixed timeline entry records the payout.
func (s *ClaimService) RecordTransferProof(claimID string, proof *multipart.FileHeader, amount *decimal.Decimal, date, notes string) (*models.Claim, error) {
	var claim models.Claim
	if err := s.db.First(&claim, "id = ?", claimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("load claim", err)
	}
	if proof == nil {
		return nil, validationErr("Bukti transfer wajib diupload")
	}
	if err := s.files.Check(proof); err != nil {
		return nil, validationErr(err.Error())
	}
	st, err := s.files.Save(proof, claimUploadKind)
	if err != nil {
		return nil, storageErr("save transfer proof", err)
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	updates := map[string]any{
		"transfer_proof_path": st.Path,
		"transfer_amount":     amount,
		"transfer_date":       date,
		"transfer_notes":      notes,
		"status":              models.ClaimStatusCompleted,
	}
	if err := s.db.Model(&claim).Updates(updates).Error; err != nil {
		if rmErr := s.files.Remove(st.Path); rmErr != nil {
			s.log.WithField("path", st.Path).WithError(rmErr).Warn("discard stored file failed")
		}
		return nil, storageErr("record transfer", err)
	}

	s.appendTimeline(claim.ID, "Selesai", "Dana santunan telah ditransfer ke rekening penerima")

	if err := s.db.First(&claim, "id = ?", claimID).Error; err != nil {
		return nil, storageErr("reload claim", err)
	}
	return &claim, nil
}

// Delete removes the claim with its documents and timeline. Backing files
// are removed best-effort; a file already missing from disk never blocks
// the database delete. Not reversible.
func (s *ClaimService) Delete(claimID string) error {
	var docs []models.ClaimDocument
	if err := s.db.Where("claim_id = ?", claimID).Find(&docs).Error; err != nil {
		return storageErr("load documents", err)
	}
	for _, doc := range docs {
		if err := s.files.Remove(doc.FilePath); err != nil {
			s.log.WithField("path", doc.FilePath).WithError(err).Warn("document file removal failed")
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("claim_id = ?", claimID).Delete(&models.ClaimDocument{}).Error; err != nil {
			return storageErr("delete documents", err)
		}
		if err := tx.Where("claim_id = ?", claimID).Delete(&models.TimelineEntry{}).Error; err != nil {
			return storageErr("delete timeline", err)
		}
		if err := tx.Delete(&models.Claim{}, "id = ?", claimID).Error; err != nil {
			return storageErr("delete claim", err)
		}
		return nil
	})
}

// Lookup resolves a claim by exact identifier first, then falls back to the
// most recent claim whose NIK equals the query.
func (s *ClaimService) Lookup(query string) (*models.Claim, error) {
	var claim models.Claim
	err := s.withRelations().First(&claim, "id = ?", query).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.withRelations().
			Where("nik = ?", query).
			Order("submitted_at DESC").
			First(&claim).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("lookup claim", err)
	}
	return &claim, nil
}

func (s *ClaimService) withRelations() *gorm.DB {
	return s.db.
		Preload("Documents").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// ListFilter narrows List. Status "all" or empty means no status filter;
// Search substring-matches the identifier, full name, and NIK.
type ListFilter struct {
	Status string
	Search string
}

// List returns one admin page of claims plus the total match count.
func (s *ClaimService) List(filter ListFilter, page, limit int) ([]models.Claim, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	q := s.db.Model(&models.Claim{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("id LIKE ? OR full_name LIKE ? OR nik LIKE ?", pattern, pattern, pattern)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count claims", err)
	}
	var claims []models.Claim
	err := q.Preload("Documents").
		Order("submitted_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&claims).Error
	if err != nil {
		return nil, 0, storageErr("list claims", err)
	}
	return claims, total, nil
}

// UserClaims returns every claim owned by a user, newest first, with
// timelines attached.
func (s *ClaimService) UserClaims(userID uint) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.db.
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&claims).Error
	if err != nil {
		return nil, storageErr("list user claims", err)
	}
	return claims, nil
}

// Document fetches one document row scoped to its owning claim.
func (s *ClaimService) Document(claimID string, documentID uint) (*models.ClaimDocument, error) {
	var doc models.ClaimDocument
	err := s.db.Where("id = ? AND claim_id = ?", documentID, claimID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("load document", err)
	}
	return &doc, nil
}
