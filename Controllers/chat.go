package Controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zygisk-enc/caresync/Middleware"
	"github.com/zygisk-enc/caresync/Models"
)

// OpenConversation finds or creates the conversation between the actor
// and the named recipient.
func OpenConversation(c *gin.Context) {
	var input struct {
		RecipientID uint `json:"recipient_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)

	var userID, doctorID uint
	switch actor.Role {
	case Models.RoleUser:
		userID, doctorID = actor.ID, input.RecipientID
		if _, err := Models.GetDoctorByID(doctorID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	case Models.RoleDoctor:
		userID, doctorID = input.RecipientID, actor.ID
		if _, err := Models.GetUserByID(userID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	conversation, err := Models.FindOrCreateConversation(userID, doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation_id": conversation.ID})
}

// FetchChatHistory returns a conversation's messages oldest first. Only a
// party of the conversation may read it.
func FetchChatHistory(c *gin.Context) {
	var input struct {
		ConversationID uint `json:"conversation_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := Middleware.CurrentActor(c)

	var conversation Models.Conversation
	if err := Models.DB.First(&conversation, input.ConversationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	if !conversation.IsParty(actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var messages []Models.Message
	if err := Models.DB.Where("conversation_id = ?", conversation.ID).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// FetchDoctorChats lists the doctor's conversations, most recent first.
func FetchDoctorChats(c *gin.Context) {
	actor := Middleware.CurrentActor(c)

	var conversations []Models.Conversation
	if err := Models.DB.Where("doctor_id = ?", actor.ID).
		Order("updated_at DESC").Find(&conversations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conversations)
}
