package Controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// FetchNotifications lists the actor's unread ledger, newest first.
func FetchNotifications(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	notifications, err := Models.UnreadNotifications(actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

// MarkNotificationsRead bulk-flips is_read for the acting recipient only.
func MarkNotificationsRead(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	if err := Models.MarkAllRead(actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read."})
}
