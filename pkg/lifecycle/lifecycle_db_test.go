package lifecycle

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"santunan/models"
	"santunan/pkg/docstore"
	"santunan/pkg/notify"
)

// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	for _, m := range []any{
		&models.User{},
		&models.Claim{},
		&models.ClaimDocument{},
		&models.TimelineEntry{},
		&models.Verification{},
		&models.VerificationDocument{},
		&models.Notification{},
	} {
		require.NoError(t, db.AutoMigrate(m))
	}
	return db
}

func testFileHeader(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("test file content"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func requiredClaimUploads(t *testing.T) map[models.DocumentType]*multipart.FileHeader {
	return map[models.DocumentType]*multipart.FileHeader{
		models.DocumentKTP:          testFileHeader(t, "ktp.jpg"),
		models.DocumentPoliceReport: testFileHeader(t, "laporan.jpg"),
		models.DocumentBankBook:     testFileHeader(t, "tabungan.jpg"),
	}
}

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	phone := fmt.Sprintf("08%d", time.Now().UnixNano()%1e10)
	user := models.User{Name: "Penguji", Phone: phone, HashedPassword: []byte("x"), Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	t.Cleanup(func() { db.Delete(&models.User{}, user.ID) })
	return &user
}

func TestClaimFullFlow(t *testing.T) {
	db := openTestDB(t)
	store := docstore.New(t.TempDir(), 0)
	notifier := notify.NewEmitter(db, nil)
	svc := NewClaimService(db, store, notifier, nil)
	user := createTestUser(t, db)

	in := validTestClaimInput()
	in.UserID = &user.ID
	in.NIK = fmt.Sprintf("%016d", time.Now().UnixNano()%1e16)

	claim, err := svc.Create(in, requiredClaimUploads(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Delete(claim.ID) })

	assert.Regexp(t, regexp.MustCompile(`^KLM-\d{4}-\d{4}$`), claim.ID)
	assert.Equal(t, models.ClaimStatusPending, claim.Status)

	got, err := svc.Lookup(claim.ID)
	require.NoError(t, err)
	assert.Len(t, got.Documents, 3)
	require.Len(t, got.Timeline, 1)
	assert.Equal(t, "Pengajuan Diterima", got.Timeline[0].StatusLabel)

	// walk the nominal workflow
	require.NoError(t, svc.Transition(claim.ID, models.ClaimStatusVerified, ""))
	require.NoError(t, svc.Transition(claim.ID, models.ClaimStatusProcessing, ""))
	require.NoError(t, svc.Transition(claim.ID, models.ClaimStatusApproved, ""))

	proof, err := svc.RecordTransferProof(claim.ID, testFileHeader(t, "bukti.jpg"), nil, "", "via BCA")
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatusCompleted, proof.Status)
	assert.NotEmpty(t, proof.TransferProofPath)
	assert.True(t, store.Exists(proof.TransferProofPath))

	got, err = svc.Lookup(claim.ID)
	require.NoError(t, err)
	require.Len(t, got.Timeline, 5)
	assert.Equal(t, "Selesai", got.Timeline[4].StatusLabel)
	assert.Equal(t, "Dana santunan telah ditransfer ke rekening penerima", got.Timeline[4].Description)

	// submitted + verified + processing + approved; the transfer-proof path
	// completes the claim without a notification
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(4), count)

	// lookup falls back to the newest claim for a NIK
	byNIK, err := svc.Lookup(in.NIK)
	require.NoError(t, err)
	assert.Equal(t, claim.ID, byNIK.ID)

	require.NoError(t, svc.Delete(claim.ID))
	_, err = svc.Lookup(claim.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	db.Where("user_id = ?", user.ID).Delete(&models.Notification{})
}

func TestClaimTransitionStrictMode(t *testing.T) {
	db := openTestDB(t)
	store := docstore.New(t.TempDir(), 0)
	svc := NewClaimService(db, store, notify.NewEmitter(db, nil), nil)

	in := validTestClaimInput()
	claim, err := svc.Create(in, requiredClaimUploads(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Delete(claim.ID) })

	svc.Strict = true
	err = svc.Transition(claim.ID, models.ClaimStatusApproved, "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	// the nominal next step still works
	require.NoError(t, svc.Transition(claim.ID, models.ClaimStatusVerified, ""))

	svc.Strict = false
	require.NoError(t, svc.Transition(claim.ID, models.ClaimStatusCompleted, ""))
}

func TestVerificationFlow(t *testing.T) {
	db := openTestDB(t)
	store := docstore.New(t.TempDir(), 0)
	svc := NewVerificationService(db, store, nil)

	nik := fmt.Sprintf("%016d", time.Now().UnixNano()%1e16)
	in := VerificationInput{
		FullName: "Siti Aminah",
		NIK:      nik,
		Phone:    "081234567891",
		PreCheck: map[string]any{"source": "form", "eligible": true},
	}
	uploads := map[models.DocumentType]*multipart.FileHeader{
		models.DocumentKTP:          testFileHeader(t, "ktp.jpg"),
		models.DocumentPoliceReport: testFileHeader(t, "laporan.jpg"),
	}
	verification, err := svc.Create(in, uploads)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Delete(verification.ID) })

	assert.Regexp(t, regexp.MustCompile(`^VER-\d{6}-\d{4}$`), verification.ID)
	assert.Equal(t, models.VerificationStatusPending, verification.Status)

	view, err := svc.Lookup(verification.ID)
	require.NoError(t, err)
	require.NotNil(t, view.PreCheck)
	assert.Equal(t, true, view.PreCheck.Data["eligible"])
	assert.Len(t, view.Documents, 2)

	require.NoError(t, svc.SetPreCheck(verification.ID, map[string]any{"source": "ocr", "nik": nik}))
	view, err = svc.Lookup(nik)
	require.NoError(t, err)
	require.NotNil(t, view.PreCheck)
	assert.Equal(t, "ocr", view.PreCheck.Data["source"])

	require.NoError(t, svc.Transition(verification.ID, models.VerificationStatusApproved, "Administrator", "OK"))
	view, err = svc.Lookup(verification.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusApproved, view.Status)
	assert.Equal(t, "Administrator", view.ReviewedBy)
	assert.NotNil(t, view.ReviewedAt)

	assert.ErrorIs(t, svc.SetPreCheck("VER-000000-0000", map[string]any{}), ErrNotFound)
}

func TestTransitionUnknownClaim(t *testing.T) {
	db := openTestDB(t)
	svc := NewClaimService(db, docstore.New(t.TempDir(), 0), notify.NewEmitter(db, nil), nil)
	assert.ErrorIs(t, svc.Transition("KLM-1970-0000", models.ClaimStatusVerified, ""), ErrNotFound)

	err := svc.Transition("KLM-1970-0000", models.ClaimStatus("exploded"), "")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
