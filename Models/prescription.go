package Models

import (
	"gorm.io/gorm"
)

// Prescription is written once per video call. The pending-calls query
// excludes already-prescribed calls, and the unique index on VideoCallID
// backs that up against concurrent writes.
type Prescription struct {
	gorm.Model
	UserID      uint         `gorm:"not null" json:"user_id"`
	DoctorID    uint         `gorm:"not null" json:"doctor_id"`
	VideoCallID *uint        `gorm:"default:null;uniqueIndex" json:"video_call_id"`
	Notes       string       `json:"notes"`
	Medications []Medication `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE" json:"medications"`
}

type Medication struct {
	gorm.Model
	PrescriptionID uint   `gorm:"not null;index" json:"prescription_id"`
	Name           string `gorm:"size:200;not null" json:"name"`
	Dosage         string `gorm:"size:100" json:"dosage"`
	Frequency      string `gorm:"size:100" json:"frequency"`
	Duration       string `gorm:"size:100" json:"duration"`
}

// IsParty reports whether the actor may view this prescription.
func (p *Prescription) IsParty(actor Actor) bool {
	switch actor.Role {
	case RoleUser:
		return actor.ID == p.UserID
	case RoleDoctor:
		return actor.ID == p.DoctorID
	}
	return false
}
