package lifecycle

import (
	"strings"

	"santunan/models"
	"santunan/pkg/notify"
)

// claimFlow is the nominal workflow. It is only enforced when a service is
// created with Strict set; the default behavior accepts any valid target
// status regardless of the current one, which is what the live system has
// always done.
var claimFlow = map[models.ClaimStatus][]models.ClaimStatus{
	models.ClaimStatusPending:    {models.ClaimStatusVerified, models.ClaimStatusRejected},
	models.ClaimStatusVerified:   {models.ClaimStatusProcessing, models.ClaimStatusRejected},
	models.ClaimStatusProcessing: {models.ClaimStatusApproved, models.ClaimStatusRejected},
	models.ClaimStatusApproved:   {models.ClaimStatusCompleted, models.ClaimStatusRejected},
	models.ClaimStatusCompleted:  {},
	models.ClaimStatusRejected:   {},
}

func allowedTransition(from, to models.ClaimStatus) bool {
	for _, next := range claimFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

// statusDescriptions are the timeline lines appended on a status change.
// The rejected line gets the admin note appended verbatim.
var statusDescriptions = map[models.ClaimStatus]string{
	models.ClaimStatusPending:    "Menunggu verifikasi dokumen",
	models.ClaimStatusVerified:   "Dokumen telah diverifikasi",
	models.ClaimStatusProcessing: "Klaim sedang diproses oleh tim",
	models.ClaimStatusApproved:   "Klaim disetujui untuk pencairan",
	models.ClaimStatusRejected:   "Klaim ditolak. ",
	models.ClaimStatusCompleted:  "Klaim telah selesai diproses",
}

func timelineDescription(status models.ClaimStatus, adminNotes string) string {
	desc := statusDescriptions[status]
	if status == models.ClaimStatusRejected {
		return desc + adminNotes
	}
	return desc
}

// statusLabel renders the timeline status column ("Verified", "Rejected", ...).
func statusLabel(status models.ClaimStatus) string {
	s := string(status)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// statusEvents maps a target status to the notification event it emits for
// owned claims. A transition back to pending emits nothing.
var statusEvents = map[models.ClaimStatus]string{
	models.ClaimStatusVerified:   notify.ClaimVerified,
	models.ClaimStatusProcessing: notify.ClaimProcessing,
	models.ClaimStatusApproved:   notify.ClaimApproved,
	models.ClaimStatusRejected:   notify.ClaimRejected,
	models.ClaimStatusCompleted:  notify.ClaimCompleted,
}
