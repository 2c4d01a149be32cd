package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"santunan/models"
	"santunan/pkg/notify"
)

func TestAllowedTransition(t *testing.T) {
	cases := []struct {
		from, to models.ClaimStatus
		ok       bool
	}{
		{models.ClaimStatusPending, models.ClaimStatusVerified, true},
		{models.ClaimStatusPending, models.ClaimStatusRejected, true},
		{models.ClaimStatusPending, models.ClaimStatusApproved, false},
		{models.ClaimStatusVerified, models.ClaimStatusProcessing, true},
		{models.ClaimStatusVerified, models.ClaimStatusCompleted, false},
		{models.ClaimStatusProcessing, models.ClaimStatusApproved, true},
		{models.ClaimStatusApproved, models.ClaimStatusCompleted, true},
		{models.ClaimStatusApproved, models.ClaimStatusRejected, true},
		{models.ClaimStatusCompleted, models.ClaimStatusPending, false},
		{models.ClaimStatusRejected, models.ClaimStatusVerified, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, allowedTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoSuccessors(t *testing.T) {
	for _, status := range models.ClaimStatuses {
		if status.Terminal() {
			assert.Empty(t, claimFlow[status], "terminal status %s has successors", status)
		}
	}
}

func TestTimelineDescription(t *testing.T) {
	assert.Equal(t, "Dokumen telah diverifikasi",
		timelineDescription(models.ClaimStatusVerified, "ignored for non-rejected"))
	assert.Equal(t, "Klaim ditolak. Dokumen KTP tidak terbaca",
		timelineDescription(models.ClaimStatusRejected, "Dokumen KTP tidak terbaca"))
	// empty note still leaves the trailing space intact
	assert.Equal(t, "Klaim ditolak. ",
		timelineDescription(models.ClaimStatusRejected, ""))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Verified", statusLabel(models.ClaimStatusVerified))
	assert.Equal(t, "Rejected", statusLabel(models.ClaimStatusRejected))
	assert.Equal(t, "Pending", statusLabel(models.ClaimStatusPending))
	assert.Equal(t, "", statusLabel(models.ClaimStatus("")))
}

func TestStatusEvents(t *testing.T) {
	// pending emits nothing; every other status maps to its event
	_, ok := statusEvents[models.ClaimStatusPending]
	assert.False(t, ok)
	assert.Equal(t, notify.ClaimVerified, statusEvents[models.ClaimStatusVerified])
	assert.Equal(t, notify.ClaimProcessing, statusEvents[models.ClaimStatusProcessing])
	assert.Equal(t, notify.ClaimApproved, statusEvents[models.ClaimStatusApproved])
	assert.Equal(t, notify.ClaimRejected, statusEvents[models.ClaimStatusRejected])
	assert.Equal(t, notify.ClaimCompleted, statusEvents[models.ClaimStatusCompleted])
}
