package Models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder is a scheduled medication or custom nudge for a patient.
// IsSent is a one-shot latch consumed by the reminder sweep.
type Reminder struct {
	gorm.Model
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	MedicationID     *uint     `gorm:"default:null" json:"medication_id"`
	ReminderDateTime time.Time `gorm:"column:reminder_datetime;not null" json:"reminder_datetime"`
	CustomMessage    string    `json:"custom_message"`
	IsSent           bool      `gorm:"not null;default:false" json:"is_sent"`
}
