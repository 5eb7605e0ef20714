package models

import (
	"errors"
	"fmt"
	"time"
)

// ReminderStatus is the lifecycle state of a reminder row.
type ReminderStatus string

const (
	// StatusAdded marks a placeholder row created from a registration
	// event; it is never picked up by the scheduler.
	StatusAdded ReminderStatus = "added"
	// StatusScheduled marks a row awaiting dispatch.
	StatusScheduled ReminderStatus = "scheduled"
	// StatusSent and StatusFailed are terminal for one-shot reminders.
	StatusSent   ReminderStatus = "sent"
	StatusFailed ReminderStatus = "failed"
)

// RepeatKind is the recurrence cadence of a reminder.
type RepeatKind string

const (
	RepeatNone    RepeatKind = "none"
	RepeatMinutes RepeatKind = "minutes"
	RepeatHours   RepeatKind = "hours"
	RepeatDays    RepeatKind = "days"
	RepeatWeeks   RepeatKind = "weeks"
	RepeatMonths  RepeatKind = "months"
)

var ErrInvalidRepeatKind = errors.New("models: invalid repeat kind")

// ParseRepeatKind validates a repeat kind coming from the API boundary.
// An empty string means no recurrence. Unknown values are rejected rather
// than silently treated as one-shot.
func ParseRepeatKind(s string) (RepeatKind, error) {
	switch RepeatKind(s) {
	case "", RepeatNone:
		return RepeatNone, nil
	case RepeatMinutes, RepeatHours, RepeatDays, RepeatWeeks, RepeatMonths:
		return RepeatKind(s), nil
	default:
		return RepeatNone, fmt.Errorf("%w: %q", ErrInvalidRepeatKind, s)
	}
}

// IsNone reports whether the reminder is one-shot.
func (k RepeatKind) IsNone() bool {
	return k == RepeatNone || k == ""
}

// Interval maps the kind to its literal duration for n steps. A month is
// fixed at 30 days; existing rows were written with that approximation and
// calendar-correcting it would shift their cadence.
func (k RepeatKind) Interval(n int) time.Duration {
	switch k {
	case RepeatMinutes:
		return time.Duration(n) * time.Minute
	case RepeatHours:
		return time.Duration(n) * time.Hour
	case RepeatDays:
		return time.Duration(n) * 24 * time.Hour
	case RepeatWeeks:
		return time.Duration(n) * 7 * 24 * time.Hour
	case RepeatMonths:
		return time.Duration(n) * 30 * 24 * time.Hour
	default:
		return 0
	}
}

// Reminder is one unit of deferred or recurring notification work.
type Reminder struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID    string         `gorm:"size:64;not null;index" json:"recipient_id"`
	Message        string         `gorm:"type:text" json:"message"`
	SendTime       time.Time      `gorm:"not null;index" json:"send_time"`
	Status         ReminderStatus `gorm:"size:16;not null;index" json:"status"`
	RepeatKind     RepeatKind     `gorm:"size:16;not null;default:'none'" json:"repeat_kind"`
	RepeatInterval int            `gorm:"not null;default:0" json:"repeat_interval"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Reminder model
func (Reminder) TableName() string {
	return "reminder"
}

// NextSendTime is the due time of the following occurrence. Only
// meaningful for recurring reminders.
func (r Reminder) NextSendTime() time.Time {
	return r.SendTime.Add(r.RepeatKind.Interval(r.RepeatInterval))
}

// ScheduleReminderRequest represents the data needed to schedule a reminder
type ScheduleReminderRequest struct {
	RecipientID    string    `json:"recipient_id" binding:"required"`
	Message        string    `json:"message" binding:"required"`
	SendTime       time.Time `json:"send_time" binding:"required"`
	RepeatKind     string    `json:"repeat_kind"`
	RepeatInterval int       `json:"repeat_interval"`
}

// CancelRemindersRequest cancels all of a recipient's reminders, or a
// single one when send_time is given.
type CancelRemindersRequest struct {
	RecipientID string     `json:"recipient_id" binding:"required"`
	SendTime    *time.Time `json:"send_time"`
}
