package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentPending   = "Pending"
	AppointmentConfirmed = "Confirmed"
	AppointmentRejected  = "Rejected"
	AppointmentCancelled = "Cancelled"
)

type Appointment struct {
	gorm.Model
	UserID   uint      `gorm:"not null" json:"user_id"`
	DoctorID uint      `gorm:"not null" json:"doctor_id"`
	DateTime time.Time `gorm:"not null" json:"appointment_datetime"`
	Status   string    `gorm:"size:50;not null;default:Pending" json:"status"`
}

// CanTransition reports whether the appointment may move to the target
// status. Transitions are monotone away from Pending and never revert.
func (a *Appointment) CanTransition(target string) bool {
	if a.Status != AppointmentPending {
		return false
	}
	switch target {
	case AppointmentConfirmed, AppointmentRejected, AppointmentCancelled:
		return true
	}
	return false
}

// ParseDateTime combines the date and time fields of a booking form.
func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
}
