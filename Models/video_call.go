package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CallPending  = "Pending"
	CallApproved = "Approved"
	CallRejected = "Rejected"
)

type VideoCall struct {
	gorm.Model
	UserID        uint      `gorm:"not null" json:"user_id"`
	DoctorID      uint      `gorm:"not null" json:"doctor_id"`
	ScheduledTime time.Time `gorm:"not null" json:"scheduled_time"`
	Status        string    `gorm:"size:50;not null;default:Pending" json:"status"`

	// ReminderSent is a one-shot latch consumed by the reminder sweep.
	// Once true it is never reset.
	ReminderSent bool `gorm:"default:false" json:"reminder_sent"`
}

func (v *VideoCall) CanTransition(target string) bool {
	if v.Status != CallPending {
		return false
	}
	return target == CallApproved || target == CallRejected
}

// IsParty reports whether the actor belongs to this call.
func (v *VideoCall) IsParty(actor Actor) bool {
	switch actor.Role {
	case RoleUser:
		return actor.ID == v.UserID
	case RoleDoctor:
		return actor.ID == v.DoctorID
	}
	return false
}
