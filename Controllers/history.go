package Controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

type TimelineEvent struct {
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Status  string    `json:"status"`
	Details string    `json:"details"`
	ID      uint      `json:"id,omitempty"`
}

// FetchPatientHistory merges appointments, calls and prescriptions into a
// single timeline, newest first. Visible to the patient themselves or to
// a doctor with a prior interaction.
func FetchPatientHistory(c *gin.Context) {
	var input struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)
	if !mayViewHistory(actor, input.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var events []TimelineEvent

	var appointments []Models.Appointment
	Models.DB.Where("user_id = ?", input.UserID).Find(&appointments)
	for _, appointment := range appointments {
		doctor, _ := Models.GetDoctorByID(appointment.DoctorID)
		events = append(events, TimelineEvent{
			Date:    appointment.DateTime,
			Type:    "Appointment",
			Title:   fmt.Sprintf("Appointment with Dr. %s", doctor.FullName),
			Status:  appointment.Status,
			Details: fmt.Sprintf("Status: %s", appointment.Status),
		})
	}

	var calls []Models.VideoCall
	Models.DB.Where("user_id = ?", input.UserID).Find(&calls)
	for _, call := range calls {
		doctor, _ := Models.GetDoctorByID(call.DoctorID)
		events = append(events, TimelineEvent{
			Date:    call.ScheduledTime,
			Type:    "Video Call",
			Title:   fmt.Sprintf("Video Call with Dr. %s", doctor.FullName),
			Status:  call.Status,
			Details: fmt.Sprintf("Status: %s", call.Status),
		})
	}

	var prescriptions []Models.Prescription
	Models.DB.Preload("Medications").Where("user_id = ?", input.UserID).Find(&prescriptions)
	for _, prescription := range prescriptions {
		doctor, _ := Models.GetDoctorByID(prescription.DoctorID)
		medCount := len(prescription.Medications)
		plural := "s"
		if medCount == 1 {
			plural = ""
		}
		events = append(events, TimelineEvent{
			Date:    prescription.CreatedAt,
			Type:    "Prescription",
			Title:   fmt.Sprintf("Prescription from Dr. %s", doctor.FullName),
			Status:  "Issued",
			Details: fmt.Sprintf("Contains %d medication%s.", medCount, plural),
			ID:      prescription.ID,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})

	c.JSON(http.StatusOK, events)
}

func mayViewHistory(actor Models.Actor, userID uint) bool {
	if actor.IsUser() && actor.ID == userID {
		return true
	}
	if !actor.IsDoctor() {
		return false
	}

	var count int64
	Models.DB.Model(&Models.Appointment{}).
		Where("user_id = ? AND doctor_id = ?", userID, actor.ID).Count(&count)
	if count > 0 {
		return true
	}
	Models.DB.Model(&Models.VideoCall{}).
		Where("user_id = ? AND doctor_id = ?", userID, actor.ID).Count(&count)
	return count > 0
}
