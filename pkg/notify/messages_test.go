package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageTable(t *testing.T) {
	ctx := Context{ClaimID: "KLM-2025-0042", Reason: "Dokumen tidak lengkap", Amount: "Rp 10.000.000"}

	cases := []struct {
		event   string
		title   string
		message string
	}{
		{ClaimSubmitted, "Klaim Berhasil Diajukan",
			"Klaim KLM-2025-0042 telah berhasil diajukan dan sedang menunggu verifikasi."},
		{ClaimVerified, "Dokumen Terverifikasi",
			"Dokumen klaim KLM-2025-0042 telah diverifikasi. Klaim Anda sedang diproses."},
		{ClaimProcessing, "Klaim Sedang Diproses",
			"Klaim KLM-2025-0042 sedang dalam proses penanganan oleh tim kami."},
		{ClaimApproved, "Klaim Disetujui",
			"Selamat! Klaim KLM-2025-0042 telah disetujui. Dana akan segera ditransfer."},
		{ClaimRejected, "Klaim Ditolak",
			"Mohon maaf, klaim KLM-2025-0042 tidak dapat disetujui. Dokumen tidak lengkap"},
		{ClaimCompleted, "Klaim Selesai",
			"Klaim KLM-2025-0042 telah selesai. Dana sebesar Rp 10.000.000 telah ditransfer ke rekening Anda."},
		{VerificationApproved, "Verifikasi Disetujui",
			"Verifikasi dokumen Anda telah disetujui. Anda dapat melanjutkan pengajuan klaim."},
		{VerificationRejected, "Verifikasi Ditolak",
			"Verifikasi dokumen Anda ditolak. Dokumen tidak lengkap"},
	}
	for _, tc := range cases {
		title, message := Message(tc.event, ctx)
		assert.Equal(t, tc.title, title, tc.event)
		assert.Equal(t, tc.message, message, tc.event)
	}
}

func TestMessageVerificationRejectedDefaultReason(t *testing.T) {
	_, message := Message(VerificationRejected, Context{})
	assert.Equal(t, "Verifikasi dokumen Anda ditolak. Silakan periksa kembali dokumen Anda.", message)
}

func TestMessageUnknownEventFallback(t *testing.T) {
	title, message := Message("claim_exploded", Context{ClaimID: "KLM-2025-0042"})
	assert.Equal(t, "Notifikasi", title)
	assert.Equal(t, "Ada pembaruan untuk Anda.", message)
}
