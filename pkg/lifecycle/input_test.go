package lifecycle

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"santunan/models"
)

func validTestClaimInput() ClaimInput {
	return ClaimInput{
		FullName:            "Budi Santoso",
		NIK:                 "3171024177080001",
		Phone:               "081234567890",
		Address:             "Jl. Merdeka No. 1, Jakarta",
		IncidentDate:        "2025-01-15",
		IncidentLocation:    "Jl. Sudirman, Jakarta",
		IncidentDescription: "Kecelakaan lalu lintas",
		BankName:            "BCA",
		AccountNumber:       "1234567890",
		AccountHolderName:   "Budi Santoso",
	}
}

func TestValidateClaimInput(t *testing.T) {
	svc := NewClaimService(nil, nil, nil, nil)

	date, err := svc.validateClaimInput(validTestClaimInput())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), date)

	missing := validTestClaimInput()
	missing.FullName = ""
	_, err = svc.validateClaimInput(missing)
	assert.EqualError(t, err, "Mohon lengkapi semua field yang wajib diisi")

	badDate := validTestClaimInput()
	badDate.IncidentDate = "15-01-2025"
	_, err = svc.validateClaimInput(badDate)
	assert.EqualError(t, err, "Format tanggal kejadian tidak valid")
}

func TestValidateClaimInputBankFieldsGetSpecificMessage(t *testing.T) {
	svc := NewClaimService(nil, nil, nil, nil)
	for _, mutate := range []func(*ClaimInput){
		func(in *ClaimInput) { in.BankName = "" },
		func(in *ClaimInput) { in.AccountNumber = "" },
		func(in *ClaimInput) { in.AccountHolderName = "" },
	} {
		in := validTestClaimInput()
		mutate(&in)
		_, err := svc.validateClaimInput(in)
		assert.EqualError(t, err,
			"Informasi rekening bank wajib diisi (nama bank, nomor rekening, nama pemilik rekening)")
	}
}

func TestCreateClaimRequiredDocuments(t *testing.T) {
	svc := NewClaimService(nil, nil, nil, nil)

	_, err := svc.Create(validTestClaimInput(), nil)
	assert.EqualError(t, err, "KTP dan Surat Keterangan Polisi wajib diupload")

	// bank book gets its own message once the other required files are present
	uploads := map[models.DocumentType]*multipart.FileHeader{
		models.DocumentKTP:          {Filename: "ktp.jpg"},
		models.DocumentPoliceReport: {Filename: "lp.jpg"},
	}
	_, err = svc.Create(validTestClaimInput(), uploads)
	assert.EqualError(t, err, "Foto/Scan Buku Tabungan wajib diupload")
}

func TestCreateVerificationInputValidation(t *testing.T) {
	svc := NewVerificationService(nil, nil, nil)

	shortNIK := VerificationInput{FullName: "Budi", NIK: "12345", Phone: "081234567890"}
	_, err := svc.Create(shortNIK, nil)
	assert.EqualError(t, err, "NIK harus 16 digit")

	missing := VerificationInput{NIK: "3171024177080001", Phone: "081234567890"}
	_, err = svc.Create(missing, nil)
	assert.EqualError(t, err, "Nama lengkap, NIK, dan nomor HP wajib diisi")

	valid := VerificationInput{FullName: "Budi", NIK: "3171024177080001", Phone: "081234567890"}
	_, err = svc.Create(valid, nil)
	assert.EqualError(t, err, "KTP dan Surat Keterangan Polisi wajib diupload")
}

func TestDecodePreCheck(t *testing.T) {
	assert.Nil(t, decodePreCheck(""))

	pc := decodePreCheck(`{"nik":"3171024177080001","eligible":true}`)
	require.NotNil(t, pc)
	assert.Equal(t, "3171024177080001", pc.Data["nik"])
	assert.Equal(t, true, pc.Data["eligible"])
	assert.Empty(t, pc.Raw)

	// legacy rows hold free text; it survives as the raw side
	pc = decodePreCheck("hasil scan manual ok")
	require.NotNil(t, pc)
	assert.Nil(t, pc.Data)
	assert.Equal(t, "hasil scan manual ok", pc.Raw)

	// a JSON array is not an object and also lands on the raw side
	pc = decodePreCheck(`[1,2,3]`)
	require.NotNil(t, pc)
	assert.Nil(t, pc.Data)
	assert.Equal(t, `[1,2,3]`, pc.Raw)
}
