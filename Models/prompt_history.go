package Models

import "gorm.io/gorm"

// PromptHistory records one AI assistant exchange for either a patient
// or a doctor.
type PromptHistory struct {
	gorm.Model
	UserID       *uint  `gorm:"default:null" json:"user_id"`
	DoctorID     *uint  `gorm:"default:null" json:"doctor_id"`
	PromptText   string `gorm:"not null" json:"prompt_text"`
	ResponseText string `gorm:"not null" json:"response_text"`
	ImageURL     string `gorm:"size:255" json:"image_url"`
}
