package store

import (
	"fmt"
	"time"

	"smartbiz/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipientRegistry owns recipient rows and the registration audit trail.
type RecipientRegistry struct {
	db *gorm.DB
}

func NewRecipientRegistry(db *gorm.DB) *RecipientRegistry {
	return &RecipientRegistry{db: db}
}

// Register inserts the identity if it is not already known. Concurrent
// events for the same identity race on the insert, so this is a single
// atomic insert-or-ignore rather than a select-then-insert. Returns true
// when the row was actually created.
func (r *RecipientRegistry) Register(recipientID, displayName string) (bool, error) {
	recipient := models.Recipient{
		RecipientID: recipientID,
		DisplayName: displayName,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipient_id"}},
		DoNothing: true,
	}).Create(&recipient)
	if result.Error != nil {
		return false, fmt.Errorf("store: register recipient %s: %w", recipientID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// List returns all known recipients, oldest registration first.
func (r *RecipientRegistry) List() ([]models.Recipient, error) {
	var recipients []models.Recipient
	if err := r.db.Order("first_seen asc").Find(&recipients).Error; err != nil {
		return nil, fmt.Errorf("store: list recipients: %w", err)
	}
	return recipients, nil
}

// RecordEvent stores the raw inbound payload for a registration event.
func (r *RecipientRegistry) RecordEvent(recipientID string, payload []byte) error {
	event := models.RegistrationEvent{
		RecipientID: recipientID,
		Payload:     datatypes.JSON(payload),
		ReceivedAt:  time.Now().UTC(),
	}
	if err := r.db.Create(&event).Error; err != nil {
		return fmt.Errorf("store: record registration event: %w", err)
	}
	return nil
}
