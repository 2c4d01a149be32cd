package notify

import "fmt"

// Event types carried on notification rows. The wire values are stable;
// the frontend switches on them.
const (
	ClaimSubmitted       = "claim_submitted"
	ClaimVerified        = "claim_verified"
	ClaimProcessing      = "claim_processing"
	ClaimApproved        = "claim_approved"
	ClaimRejected        = "claim_rejected"
	ClaimCompleted       = "claim_completed"
	VerificationApproved = "verification_approved"
	VerificationRejected = "verification_rejected"
)

// Context carries the values interpolated into a notification message.
type Context struct {
	ClaimID string
	Reason  string
	Amount  string
}

// Message maps an event type to its user-facing title and message. Unknown
// event types fall back to a generic pair instead of failing.
func Message(eventType string, ctx Context) (title, message string) {
	switch eventType {
	case ClaimSubmitted:
		return "Klaim Berhasil Diajukan",
			fmt.Sprintf("Klaim %s telah berhasil diajukan dan sedang menunggu verifikasi.", ctx.ClaimID)
	case ClaimVerified:
		return "Dokumen Terverifikasi",
			fmt.Sprintf("Dokumen klaim %s telah diverifikasi. Klaim Anda sedang diproses.", ctx.ClaimID)
	case ClaimProcessing:
		return "Klaim Sedang Diproses",
			fmt.Sprintf("Klaim %s sedang dalam proses penanganan oleh tim kami.", ctx.ClaimID)
	case ClaimApproved:
		return "Klaim Disetujui",
			fmt.Sprintf("Selamat! Klaim %s telah disetujui. Dana akan segera ditransfer.", ctx.ClaimID)
	case ClaimRejected:
		return "Klaim Ditolak",
			fmt.Sprintf("Mohon maaf, klaim %s tidak dapat disetujui. %s", ctx.ClaimID, ctx.Reason)
	case ClaimCompleted:
		return "Klaim Selesai",
			fmt.Sprintf("Klaim %s telah selesai. Dana sebesar %s telah ditransfer ke rekening Anda.", ctx.ClaimID, ctx.Amount)
	case VerificationApproved:
		return "Verifikasi Disetujui",
			"Verifikasi dokumen Anda telah disetujui. Anda dapat melanjutkan pengajuan klaim."
	case VerificationRejected:
		reason := ctx.Reason
		if reason == "" {
			reason = "Silakan periksa kembali dokumen Anda."
		}
		return "Verifikasi Ditolak", "Verifikasi dokumen Anda ditolak. " + reason
	}
	return "Notifikasi", "Ada pembaruan untuk Anda."
}
