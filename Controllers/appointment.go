package Controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/FirebaseMessaging"
	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/SSE"
)

// BookAppointment creates a Pending appointment and the doctor's
// notification in one transaction: either both rows land or neither.
func BookAppointment(c *gin.Context) {
	var input struct {
		DoctorID uint   `json:"doctor_id" binding:"required"`
		Date     string `json:"date" binding:"required"`
		Time     string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)
	user, err := Models.GetUserByID(actor.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var doctor Models.Doctor
	if err := Models.DB.First(&doctor, input.DoctorID).Error; err != nil || !doctor.IsApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	if !doctor.IsAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This doctor is currently unavailable for new appointments."})
		return
	}

	dateTime, err := Models.ParseDateTime(input.Date, input.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time format"})
		return
	}

	appointment := Models.Appointment{
		UserID:   actor.ID,
		DoctorID: doctor.ID,
		DateTime: dateTime,
		Status:   Models.AppointmentPending,
	}

	tx := Models.DB.Begin()
	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save the appointment."})
		return
	}

	notification := Models.NotifyDoctor(doctor.ID,
		fmt.Sprintf("You have a new appointment request from %s for %s.",
			user.FullName, dateTime.Format("Jan 2 at 3:04 PM")))
	if err := tx.Create(&notification).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save the appointment."})
		return
	}
	tx.Commit()

	SSE.Broadcaster.Broadcast("refresh")
	FirebaseMessaging.NotifyActor(Models.Actor{Role: Models.RoleDoctor, ID: doctor.ID},
		"New Appointment Request", notification.Message)

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Appointment request submitted successfully!",
		"appointment_id": appointment.ID,
	})
}

// UpdateAppointmentStatus lets the owning doctor confirm or reject a
// pending appointment. A non-owning actor gets 403 and no state change.
func UpdateAppointmentStatus(c *gin.Context) {
	var input struct {
		AppointmentID uint   `json:"appointment_id" binding:"required"`
		Action        string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)

	var appointment Models.Appointment
	if err := Models.DB.First(&appointment, input.AppointmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if appointment.DoctorID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to modify this appointment."})
		return
	}

	var target string
	switch input.Action {
	case "confirm":
		target = Models.AppointmentConfirmed
	case "reject":
		target = Models.AppointmentRejected
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}

	if !appointment.CanTransition(target) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment is no longer pending"})
		return
	}

	doctor, err := Models.GetDoctorByID(actor.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	verb := "confirmed"
	if target == Models.AppointmentRejected {
		verb = "rejected"
	}
	notification := Models.NotifyUser(appointment.UserID,
		fmt.Sprintf("Dr. %s has %s your appointment for %s.",
			doctor.FullName, verb, appointment.DateTime.Format("Jan 2 at 3:04 PM")))

	tx := Models.DB.Begin()
	if err := tx.Model(&appointment).Update("status", target).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Create(&notification).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tx.Commit()

	SSE.Broadcaster.Broadcast("refresh")
	FirebaseMessaging.NotifyActor(Models.Actor{Role: Models.RoleUser, ID: appointment.UserID},
		"Appointment "+target, notification.Message)

	c.JSON(http.StatusOK, gin.H{"message": "Appointment " + verb + " successfully!", "status": target})
}

// CancelAppointment lets the owning patient cancel and notifies the doctor.
func CancelAppointment(c *gin.Context) {
	var input struct {
		AppointmentID uint `json:"appointment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)

	var appointment Models.Appointment
	if err := Models.DB.First(&appointment, input.AppointmentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if appointment.UserID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to cancel this appointment."})
		return
	}

	if !appointment.CanTransition(Models.AppointmentCancelled) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment is no longer pending"})
		return
	}

	user, err := Models.GetUserByID(actor.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	notification := Models.NotifyDoctor(appointment.DoctorID,
		fmt.Sprintf("%s has cancelled their appointment scheduled for %s.",
			user.FullName, appointment.DateTime.Format("Jan 2 at 3:04 PM")))

	tx := Models.DB.Begin()
	if err := tx.Model(&appointment).Update("status", Models.AppointmentCancelled).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Create(&notification).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tx.Commit()

	SSE.Broadcaster.Broadcast("refresh")
	FirebaseMessaging.NotifyActor(Models.Actor{Role: Models.RoleDoctor, ID: appointment.DoctorID},
		"Appointment Cancelled", notification.Message)

	c.JSON(http.StatusOK, gin.H{"message": "Appointment successfully cancelled."})
}

// FetchUserAppointments lists the patient's appointments, newest first.
func FetchUserAppointments(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var appointments []Models.Appointment
	if err := Models.DB.Where("user_id = ?", actor.ID).
		Order("date_time DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// FetchDoctorAppointments lists the doctor's appointments grouped the way
// the dashboard renders them.
func FetchDoctorAppointments(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var appointments []Models.Appointment
	if err := Models.DB.Where("doctor_id = ?", actor.ID).
		Order("date_time ASC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	output := gin.H{
		"pending":          []Models.Appointment{},
		"confirmed":        []Models.Appointment{},
		"past_or_rejected": []Models.Appointment{},
	}
	pending := []Models.Appointment{}
	confirmed := []Models.Appointment{}
	pastOrRejected := []Models.Appointment{}
	for _, appointment := range appointments {
		switch {
		case appointment.Status == Models.AppointmentPending && appointment.DateTime.After(now):
			pending = append(pending, appointment)
		case appointment.Status == Models.AppointmentConfirmed && appointment.DateTime.After(now):
			confirmed = append(confirmed, appointment)
		default:
			pastOrRejected = append(pastOrRejected, appointment)
		}
	}
	output["pending"] = pending
	output["confirmed"] = confirmed
	output["past_or_rejected"] = pastOrRejected

	c.JSON(http.StatusOK, output)
}
