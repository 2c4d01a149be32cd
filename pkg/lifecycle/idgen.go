package lifecycle

import (
	"fmt"
	"math/rand"
	"time"
)

// Identifier formats. The 4-digit suffix is drawn uniformly from [0, 9999]
// with no uniqueness pre-check; the primary key constraint catches the rare
// collision and the insert is retried with a fresh suffix (see idInsertAttempts).
const (
	claimIDPrefix        = "KLM"
	verificationIDPrefix = "VER"
)

// idInsertAttempts bounds the regenerate-and-retry loop on duplicate-key
// insert failures before giving up with a StorageError.
const idInsertAttempts = 3

// NewClaimID returns an identifier of the form KLM-<year>-<4 digits>.
func NewClaimID(now time.Time) string {
	return fmt.Sprintf("%s-%d-%04d", claimIDPrefix, now.Year(), rand.Intn(10000))
}

// NewVerificationID returns an identifier of the form VER-<year><month>-<4 digits>.
func NewVerificationID(now time.Time) string {
	return fmt.Sprintf("%s-%d%02d-%04d", verificationIDPrefix, now.Year(), int(now.Month()), rand.Intn(10000))
}
