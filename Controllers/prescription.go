package Controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// FetchPendingPrescriptionCalls lists the doctor's approved past calls
// that have no prescription yet. Already-prescribed calls are excluded by
// the subquery, which together with the unique index on video_call_id
// keeps a call to at most one prescription.
func FetchPendingPrescriptionCalls(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	subquery := Models.DB.Model(&Models.Prescription{}).
		Where("video_call_id IS NOT NULL").Select("video_call_id")

	var calls []Models.VideoCall
	if err := Models.DB.
		Where("doctor_id = ? AND status = ? AND scheduled_time < ? AND id NOT IN (?)",
			actor.ID, Models.CallApproved, time.Now(), subquery).
		Order("scheduled_time DESC").Limit(20).Find(&calls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, calls)
}

type MedicationInput struct {
	Name      string `json:"name" binding:"required"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// WritePrescription creates the prescription and its medications in one
// transaction.
func WritePrescription(c *gin.Context) {
	var input struct {
		CallID      uint              `json:"call_id" binding:"required"`
		Notes       string            `json:"notes"`
		Medications []MedicationInput `json:"medications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)

	var call Models.VideoCall
	if err := Models.DB.First(&call, input.CallID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Call not found"})
		return
	}
	if call.DoctorID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	callID := call.ID
	prescription := Models.Prescription{
		UserID:      call.UserID,
		DoctorID:    actor.ID,
		VideoCallID: &callID,
		Notes:       input.Notes,
	}

	tx := Models.DB.Begin()
	if err := tx.Create(&prescription).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "A prescription already exists for this call"})
		return
	}
	for _, med := range input.Medications {
		medication := Models.Medication{
			PrescriptionID: prescription.ID,
			Name:           med.Name,
			Dosage:         med.Dosage,
			Frequency:      med.Frequency,
			Duration:       med.Duration,
		}
		if err := tx.Create(&medication).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Prescription created successfully!",
		"prescription_id": prescription.ID,
	})
}

// FetchUserPrescriptions lists the patient's prescriptions, newest first.
func FetchUserPrescriptions(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var prescriptions []Models.Prescription
	if err := Models.DB.Preload("Medications").
		Where("user_id = ?", actor.ID).
		Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}

// FetchDoctorPrescriptions lists the prescriptions the doctor has written.
func FetchDoctorPrescriptions(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var prescriptions []Models.Prescription
	if err := Models.DB.Preload("Medications").
		Where("doctor_id = ?", actor.ID).
		Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}

// GetPrescription returns one prescription to one of its parties.
func GetPrescription(c *gin.Context) {
	var input struct {
		PrescriptionID uint `json:"prescription_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)

	var prescription Models.Prescription
	if err := Models.DB.Preload("Medications").First(&prescription, input.PrescriptionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}
	if !prescription.IsParty(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, prescription)
}
