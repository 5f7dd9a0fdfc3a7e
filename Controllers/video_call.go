package Controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Mailer"
	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// RequestCall creates a Pending video call, commits it, then sends
// best-effort emails to both parties. A mail failure surfaces as a 500
// but never rolls back the committed row.
func RequestCall(c *gin.Context) {
	var input struct {
		DoctorID uint   `json:"doctor_id" binding:"required"`
		Date     string `json:"date" binding:"required"`
		Time     string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date and time are required."})
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

	scheduledTime, err := Models.ParseDateTime(input.Date, input.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time format"})
		return
	}

	call := Models.VideoCall{
		UserID:        actor.ID,
		DoctorID:      doctor.ID,
		ScheduledTime: scheduledTime,
		Status:        Models.CallPending,
		ReminderSent:  false,
	}
	if err := Models.DB.Create(&call).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	when := scheduledTime.Format("January 2, 2006 at 3:04 PM")

	doctorBody := fmt.Sprintf(
		"Hello Dr. %s,\n\nYou have received a new video call request from %s for %s.\nPlease log in to your dashboard to approve or reject it.",
		doctor.FullName, user.FullName, when)
	userBody := fmt.Sprintf(
		"Hello %s,\n\nYour video call request to Dr. %s for %s has been sent. You will be notified once the doctor responds.",
		user.FullName, doctor.FullName, when)

	if err := Mailer.Send([]string{doctor.Email}, "New Video Call Request", doctorBody); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := Mailer.Send([]string{user.Email}, "Your Video Call Request has been Sent", userBody); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Call request sent successfully!", "call_id": call.ID})
}

// UpdateCallStatus lets the owning doctor approve or reject a pending
// call, then emails the patient.
func UpdateCallStatus(c *gin.Context) {
	var input struct {
		CallID uint   `json:"call_id" binding:"required"`
		Action string `json:"action" binding:"required"`
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
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized."})
		return
	}

	if input.Action != Models.CallApproved && input.Action != Models.CallRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		return
	}
	if !call.CanTransition(input.Action) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Call is no longer pending"})
		return
	}

	if err := Models.DB.Model(&call).Update("status", input.Action).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user, err := Models.GetUserByID(call.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	doctor, err := Models.GetDoctorByID(call.DoctorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour video call request with Dr. %s for %s has been %s.",
		user.FullName, doctor.FullName, call.ScheduledTime.Format("January 2, 2006 at 3:04 PM"), input.Action)

	if err := Mailer.Send([]string{user.Email},
		fmt.Sprintf("Your Video Call Request has been %s", input.Action), body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Call has been " + input.Action + ".", "status": input.Action})
}

// FetchDoctorCalls lists the doctor's pending and approved call requests.
func FetchDoctorCalls(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var pending []Models.VideoCall
	if err := Models.DB.Where("doctor_id = ? AND status = ?", actor.ID, Models.CallPending).
		Order("scheduled_time ASC").Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var approved []Models.VideoCall
	if err := Models.DB.Where("doctor_id = ? AND status = ?", actor.ID, Models.CallApproved).
		Order("scheduled_time ASC").Find(&approved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending, "approved": approved})
}

// FetchUserCalls lists the patient's call requests with their statuses.
func FetchUserCalls(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var calls []Models.VideoCall
	if err := Models.DB.Where("user_id = ?", actor.ID).
		Order("scheduled_time DESC").Find(&calls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, calls)
}

// JoinCall authorizes entry to the call page: the actor must be a party
// and the call must be approved.
func JoinCall(c *gin.Context) {
	var input struct {
		CallID uint `json:"call_id" binding:"required"`
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

	if !call.IsParty(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	if call.Status != Models.CallApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This call has not been approved or has been cancelled."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"call_id": call.ID, "room": fmt.Sprintf("call_%d", call.ID)})
}
