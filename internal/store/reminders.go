package store

import (
	"fmt"
	"time"

	"smartbiz/internal/models"

	"gorm.io/gorm"
)

// ReminderStore owns all reads and writes to reminder rows. The scheduler
// and the API surface both go through it; neither touches the table
// directly, so single-row updates are the only concurrency primitive.
type ReminderStore struct {
	db *gorm.DB
}

func NewReminderStore(db *gorm.DB) *ReminderStore {
	return &ReminderStore{db: db}
}

// Create inserts a new reminder row and fills in its assigned ID.
func (s *ReminderStore) Create(r *models.Reminder) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("store: create reminder: %w", err)
	}
	return nil
}

// FindDue returns every scheduled row whose send_time has passed. No
// ordering is guaranteed; the scheduler processes whatever comes back.
func (s *ReminderStore) FindDue(now time.Time) ([]models.Reminder, error) {
	var due []models.Reminder
	err := s.db.
		Where("status = ? AND send_time <= ?", models.StatusScheduled, now).
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("store: find due reminders: %w", err)
	}
	return due, nil
}

// UpdateStatus moves a single row to the given status.
func (s *ReminderStore) UpdateStatus(id uint, status models.ReminderStatus) error {
	err := s.db.Model(&models.Reminder{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("store: update reminder %d status: %w", id, err)
	}
	return nil
}

// Reschedule advances a row's due time for its next occurrence. The status
// stays scheduled.
func (s *ReminderStore) Reschedule(id uint, next time.Time) error {
	err := s.db.Model(&models.Reminder{}).
		Where("id = ?", id).
		Update("send_time", next).Error
	if err != nil {
		return fmt.Errorf("store: reschedule reminder %d: %w", id, err)
	}
	return nil
}

// Delete removes a reminder by id. Deleting a row that does not exist is
// not an error.
func (s *ReminderStore) Delete(id uint) error {
	err := s.db.Where("id = ?", id).Delete(&models.Reminder{}).Error
	if err != nil {
		return fmt.Errorf("store: delete reminder %d: %w", id, err)
	}
	return nil
}

// DeleteByRecipient removes a recipient's scheduled reminders. With
// sendTime set it targets the single matching occurrence; without it, all
// of them. Terminal rows and the opt-in placeholder are never touched, so
// cancelling does not erase delivery history or de-register the recipient.
func (s *ReminderStore) DeleteByRecipient(recipientID string, sendTime *time.Time) error {
	query := s.db.Where("recipient_id = ? AND status = ?", recipientID, models.StatusScheduled)
	if sendTime != nil {
		query = query.Where("send_time = ?", *sendTime)
	}
	if err := query.Delete(&models.Reminder{}).Error; err != nil {
		return fmt.Errorf("store: delete reminders for %s: %w", recipientID, err)
	}
	return nil
}

// List returns reminders ordered by due time, optionally filtered by
// status and recipient.
func (s *ReminderStore) List(status, recipientID string) ([]models.Reminder, error) {
	query := s.db.Order("send_time asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if recipientID != "" {
		query = query.Where("recipient_id = ?", recipientID)
	}

	var reminders []models.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("store: list reminders: %w", err)
	}
	return reminders, nil
}
