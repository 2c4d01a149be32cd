package lifecycle

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"santunan/models"
	"santunan/pkg/docstore"
)

const verificationUploadKind = "verifications"

// VerificationService owns the pre-check verification workflow. It is a
// deliberately smaller machine than claims: pending goes straight to
// approved or rejected, there is no timeline entity, and no notifications
// are emitted; outcomes are retrieved by polling lookup.
type VerificationService struct {
	db       *gorm.DB
	files    *docstore.Store
	validate *validator.Validate
	log      logrus.FieldLogger
}

func NewVerificationService(db *gorm.DB, files *docstore.Store, log logrus.FieldLogger) *VerificationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &VerificationService{
		db:       db,
		files:    files,
		validate: validator.New(),
		log:      log,
	}
}

// VerificationInput is the claimant-side submission. PreCheck is an opaque
// structured payload serialized on write.
type VerificationInput struct {
	FullName string `validate:"required"`
	NIK      string `validate:"required,len=16"`
	Phone    string `validate:"required"`
	Email    *string
	PreCheck any
}

// PreCheck is the decoded pre-check payload. Exactly one side is set:
// Data when the stored text parses as a JSON object, Raw when it does not.
// The raw fallback preserves the historical lenient-read behavior while
// letting callers tell the two cases apart.
type PreCheck struct {
	Data map[string]any `json:"data,omitempty"`
	Raw  string         `json:"raw,omitempty"`
}

func decodePreCheck(stored string) *PreCheck {
	if stored == "" {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(stored), &data); err != nil {
		return &PreCheck{Raw: stored}
	}
	return &PreCheck{Data: data}
}

// VerificationView is a verification with its decoded pre-check payload.
type VerificationView struct {
	models.Verification
	PreCheck *PreCheck `json:"preCheckResults,omitempty"`
}

func viewOf(v models.Verification) VerificationView {
	return VerificationView{Verification: v, PreCheck: decodePreCheck(v.PreCheckResults)}
}

var requiredVerificationDocuments = []models.DocumentType{
	models.DocumentKTP,
	models.DocumentPoliceReport,
}

// Create validates and persists a verification with its documents. The NIK
// must be exactly 16 characters; nothing is persisted on validation failure.
func (s *VerificationService) Create(in VerificationInput, uploads map[models.DocumentType]*multipart.FileHeader) (*models.Verification, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.StructField() == "NIK" && fe.Tag() == "len" {
					return nil, validationErr("NIK harus 16 digit")
				}
			}
		}
		return nil, validationErr("Nama lengkap, NIK, dan nomor HP wajib diisi")
	}
	for _, required := range requiredVerificationDocuments {
		if uploads[required] == nil {
			return nil, validationErr("KTP dan Surat Keterangan Polisi wajib diupload")
		}
	}
	for docType, fh := range uploads {
		if fh == nil {
			continue
		}
		if !validVerificationDocumentType(docType) {
			return nil, validationErr("Jenis dokumen tidak dikenal: " + string(docType))
		}
		if err := s.files.Check(fh); err != nil {
			return nil, validationErr(err.Error())
		}
	}

	var preCheck string
	if in.PreCheck != nil {
		raw, err := json.Marshal(in.PreCheck)
		if err != nil {
			return nil, validationErr("Data pre-check tidak valid")
		}
		preCheck = string(raw)
	}

	stored := make(map[models.DocumentType]*docstore.Stored, len(uploads))
	for docType, fh := range uploads {
		if fh == nil {
			continue
		}
		st, err := s.files.Save(fh, verificationUploadKind)
		if err != nil {
			s.discardStored(stored)
			return nil, storageErr("save document", err)
		}
		stored[docType] = st
	}

	verification := models.Verification{
		FullName:        in.FullName,
		NIK:             in.NIK,
		Phone:           in.Phone,
		Email:           in.Email,
		PreCheckResults: preCheck,
		Status:          models.VerificationStatusPending,
	}

	var insertErr error
	for attempt := 0; attempt < idInsertAttempts; attempt++ {
		verification.ID = NewVerificationID(time.Now())
		insertErr = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&verification).Error; err != nil {
				return err
			}
			for docType, st := range stored {
				doc := models.VerificationDocument{
					VerificationID: verification.ID,
					DocumentType:   docType,
					FileName:       st.FileName,
					FilePath:       st.Path,
					FileSize:       st.Size,
					MimeType:       st.MimeType,
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
		return nil, storageErr("create verification", insertErr)
	}
	return &verification, nil
}

func validVerificationDocumentType(t models.DocumentType) bool {
	for _, v := range models.VerificationDocumentTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (s *VerificationService) discardStored(stored map[models.DocumentType]*docstore.Stored) {
	for _, st := range stored {
		if err := s.files.Remove(st.Path); err != nil {
			s.log.WithField("path", st.Path).WithError(err).Warn("discard stored file failed")
		}
	}
}

// Transition sets the review outcome. Reviewer identity and review time are
// recorded unconditionally on every call, even when re-setting to pending.
func (s *VerificationService) Transition(verificationID string, target models.VerificationStatus, reviewer, adminNotes string) error {
	if !target.Valid() {
		return validationErr("Status tidak valid")
	}
	var verification models.Verification
	if err := s.db.First(&verification, "id = ?", verificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageErr("load verification", err)
	}
	now := time.Now()
	updates := map[string]any{
		"status":      target,
		"admin_notes": adminNotes,
		"reviewed_by": reviewer,
		"reviewed_at": now,
	}
	if err := s.db.Model(&verification).Updates(updates).Error; err != nil {
		return storageErr("update verification status", err)
	}
	return nil
}

// SetPreCheck serializes payload into the verification's pre-check column.
// The OCR watcher uses this to attach server-side scan results.
func (s *VerificationService) SetPreCheck(verificationID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return validationErr("Data pre-check tidak valid")
	}
	res := s.db.Model(&models.Verification{}).
		Where("id = ?", verificationID).
		Update("pre_check_results", string(raw))
	if res.Error != nil {
		return storageErr("set pre-check", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Lookup resolves by exact identifier first, then most recent match on NIK.
func (s *VerificationService) Lookup(query string) (*VerificationView, error) {
	var verification models.Verification
	err := s.db.Preload("Documents").First(&verification, "id = ?", query).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Preload("Documents").
			Where("nik = ?", query).
			Order("submitted_at DESC").
			First(&verification).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("lookup verification", err)
	}
	view := viewOf(verification)
	return &view, nil
}

// List returns one admin page of verifications plus the total match count.
func (s *VerificationService) List(filter ListFilter, page, limit int) ([]VerificationView, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	q := s.db.Model(&models.Verification{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("id LIKE ? OR full_name LIKE ? OR nik LIKE ?", pattern, pattern, pattern)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storageErr("count verifications", err)
	}
	var items []models.Verification
	err := q.Preload("Documents").
		Order("submitted_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, storageErr("list verifications", err)
	}
	views := make([]VerificationView, 0, len(items))
	for _, v := range items {
		views = append(views, viewOf(v))
	}
	return views, total, nil
}

// Delete removes the verification and its documents; backing files are
// removed best-effort.
func (s *VerificationService) Delete(verificationID string) error {
	var docs []models.VerificationDocument
	if err := s.db.Where("verification_id = ?", verificationID).Find(&docs).Error; err != nil {
		return storageErr("load documents", err)
	}
	for _, doc := range docs {
		if err := s.files.Remove(doc.FilePath); err != nil {
			s.log.WithField("path", doc.FilePath).WithError(err).Warn("document file removal failed")
		}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("verification_id = ?", verificationID).Delete(&models.VerificationDocument{}).Error; err != nil {
			return storageErr("delete documents", err)
		}
		if err := tx.Delete(&models.Verification{}, "id = ?", verificationID).Error; err != nil {
			return storageErr("delete verification", err)
		}
		return nil
	})
}

// Document fetches one document row scoped to its owning verification.
func (s *VerificationService) Document(verificationID string, documentID uint) (*models.VerificationDocument, error) {
	var doc models.VerificationDocument
	err := s.db.Where("id = ? AND verification_id = ?", documentID, verificationID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("load document", err)
	}
	return &doc, nil
}
