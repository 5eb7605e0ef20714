package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipient is an addressable identity discovered through inbound
// registration events (or added explicitly). Rows are never deleted.
type Recipient struct {
	RecipientID string    `gorm:"primaryKey;size:64" json:"recipient_id"`
	DisplayName string    `gorm:"size:128" json:"display_name"`
	FirstSeen   time.Time `gorm:"not null" json:"first_seen"`
}

// TableName specifies the table name for the Recipient model
func (Recipient) TableName() string {
	return "recipient"
}

// BeforeCreate hook stamps the first registration time
func (r *Recipient) BeforeCreate(tx *gorm.DB) error {
	if r.FirstSeen.IsZero() {
		r.FirstSeen = time.Now().UTC()
	}
	return nil
}

// RegistrationEvent is an audit row for each inbound webhook delivery,
// keeping the raw gateway payload alongside the extracted identity.
type RegistrationEvent struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID string         `gorm:"size:64;index" json:"recipient_id"`
	Payload     datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	ReceivedAt  time.Time      `gorm:"not null" json:"received_at"`
}

// TableName specifies the table name for the RegistrationEvent model
func (RegistrationEvent) TableName() string {
	return "registration_event"
}
