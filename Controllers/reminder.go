package Controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// CreateReminders sets one reminder per date × time combination.
func CreateReminders(c *gin.Context) {
	var input struct {
		MedicationID  *uint    `json:"medication_id"`
		Dates         []string `json:"dates" binding:"required"`
		Times         []string `json:"times" binding:"required"`
		CustomMessage string   `json:"custom_message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates and times are required."})
		return
	}

	actor := Middleware.CurrentActor(c)

	tx := Models.DB.Begin()
	for _, dateStr := range input.Dates {
		for _, timeStr := range input.Times {
			reminderDT, err := Models.ParseDateTime(dateStr, timeStr)
			if err != nil {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time format"})
				return
			}
			reminder := Models.Reminder{
				UserID:           actor.ID,
				MedicationID:     input.MedicationID,
				ReminderDateTime: reminderDT,
				CustomMessage:    input.CustomMessage,
			}
			if err := tx.Create(&reminder).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Reminders set successfully!"})
}

// FetchReminders lists the patient's upcoming unsent reminders.
func FetchReminders(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var reminders []Models.Reminder
	if err := Models.DB.
		Where("user_id = ? AND is_sent = ?", actor.ID, false).
		Order("reminder_datetime ASC").Find(&reminders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reminders)
}

// DeleteReminder removes one of the patient's own reminders.
func DeleteReminder(c *gin.Context) {
	var input struct {
		ReminderID uint `json:"reminder_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)

	var reminder Models.Reminder
	if err := Models.DB.First(&reminder, input.ReminderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}
	if reminder.UserID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := Models.DB.Delete(&reminder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully."})
}
