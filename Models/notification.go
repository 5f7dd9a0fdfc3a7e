package Models

import (
	"errors"

	"gorm.io/gorm"
)

// Notification is one row of the per-recipient unread ledger. Exactly one
// of RecipientUserID / RecipientDoctorID is set.
type Notification struct {
	gorm.Model
	Message           string `gorm:"not null" json:"message"`
	IsRead            bool   `gorm:"not null;default:false" json:"is_read"`
	RecipientUserID   *uint  `gorm:"default:null" json:"recipient_user_id"`
	RecipientDoctorID *uint  `gorm:"default:null" json:"recipient_doctor_id"`
}

// NotifyUser builds an unread notification addressed to a patient.
func NotifyUser(userID uint, message string) Notification {
	return Notification{Message: message, RecipientUserID: &userID}
}

// NotifyDoctor builds an unread notification addressed to a doctor.
func NotifyDoctor(doctorID uint, message string) Notification {
	return Notification{Message: message, RecipientDoctorID: &doctorID}
}

func recipientScope(db *gorm.DB, actor Actor) (*gorm.DB, error) {
	switch actor.Role {
	case RoleUser:
		return db.Where("recipient_user_id = ?", actor.ID), nil
	case RoleDoctor:
		return db.Where("recipient_doctor_id = ?", actor.ID), nil
	}
	return nil, errors.New("actor has no notification ledger")
}

// UnreadNotifications lists the actor's unread messages, newest first.
func UnreadNotifications(actor Actor) ([]Notification, error) {
	query, err := recipientScope(DB.Model(&Notification{}).Where("is_read = ?", false), actor)
	if err != nil {
		return nil, err
	}
	var notifications []Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllRead flips is_read for the actor's rows only. Other recipients'
// rows are never touched.
func MarkAllRead(actor Actor) error {
	query, err := recipientScope(DB.Model(&Notification{}).Where("is_read = ?", false), actor)
	if err != nil {
		return err
	}
	return query.Update("is_read", true).Error
}
