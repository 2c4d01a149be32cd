package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"santunan/models"
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
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return db
}

func TestEmitAndMarkRead(t *testing.T) {
	db := openTestDB(t)
	e := NewEmitter(db, nil)

	const userID = 990001
	t.Cleanup(func() { db.Where("user_id = ?", userID).Delete(&models.Notification{}) })

	res := e.Emit(userID, ClaimApproved, "KLM-2025-0042", Context{ClaimID: "KLM-2025-0042"})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Notification)
	assert.Equal(t, "Klaim Disetujui", res.Notification.Title)
	assert.False(t, res.Notification.IsRead)

	items, err := e.ListForUser(userID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// another user cannot touch the row
	assert.ErrorIs(t, e.MarkRead(userID+1, res.Notification.ID), ErrNotFound)
	assert.ErrorIs(t, e.Delete(userID+1, res.Notification.ID), ErrNotFound)

	require.NoError(t, e.MarkRead(userID, res.Notification.ID))
	items, err = e.ListForUser(userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsRead)
	assert.NotNil(t, items[0].ReadAt)

	require.NoError(t, e.Delete(userID, res.Notification.ID))
	items, err = e.ListForUser(userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
