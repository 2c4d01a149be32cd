package notify

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"santunan/models"
)

// ErrNotFound reports a notification that does not exist or is not owned by
// the requesting user.
var ErrNotFound = errors.New("notification not found")

// Emitter persists notification rows for later pull-based retrieval.
// Emission is fire-and-forget: a write failure is logged and captured in the
// Result, never propagated as an error that could abort the operation that
// triggered it.
type Emitter struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewEmitter(db *gorm.DB, log logrus.FieldLogger) *Emitter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Emitter{db: db, log: log}
}

// Result is the outcome of a best-effort emission. Callers may inspect Err
// but must not fail their own operation on it.
type Result struct {
	Notification *models.Notification
	Err          error
}

// Emit resolves the message for eventType and persists a notification row
// for userID. referenceID is a weak reference back to the claim or
// verification that caused the event.
func (e *Emitter) Emit(userID uint, eventType, referenceID string, ctx Context) Result {
	title, message := Message(eventType, ctx)
	n := models.Notification{
		UserID:      userID,
		Type:        eventType,
		Title:       title,
		Message:     message,
		ReferenceID: referenceID,
	}
	if err := e.db.Create(&n).Error; err != nil {
		e.log.WithFields(logrus.Fields{
			"user_id":   userID,
			"type":      eventType,
			"reference": referenceID,
		}).WithError(err).Warn("notification write failed")
		return Result{Err: err}
	}
	return Result{Notification: &n}
}

// ListForUser returns the newest notifications for a user, capped at 50.
func (e *Emitter) ListForUser(userID uint) ([]models.Notification, error) {
	var items []models.Notification
	err := e.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&items).Error
	return items, err
}

// MarkRead flags a single notification as read. Ownership is checked first
// so one user cannot touch another's rows.
func (e *Emitter) MarkRead(userID, id uint) error {
	var n models.Notification
	if err := e.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	now := time.Now()
	return e.db.Model(&n).Updates(map[string]any{"is_read": true, "read_at": now}).Error
}

// MarkAllRead flags every unread notification of a user as read.
func (e *Emitter) MarkAllRead(userID uint) error {
	now := time.Now()
	return e.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": now}).Error
}

// Delete removes a notification owned by the user.
func (e *Emitter) Delete(userID, id uint) error {
	var n models.Notification
	if err := e.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return e.db.Delete(&n).Error
}
