package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SenderUser   = "user"
	SenderDoctor = "doctor"
)

// Conversation pairs one patient with one doctor. Chat messages hang off it
// and are cascade-deleted with it.
type Conversation struct {
	gorm.Model
	UserID   uint      `gorm:"not null;index:idx_convo_pair,unique" json:"user_id"`
	DoctorID uint      `gorm:"not null;index:idx_convo_pair,unique" json:"doctor_id"`
	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

type Message struct {
	gorm.Model
	ConversationID uint   `gorm:"not null;index" json:"conversation_id"`
	SenderType     string `gorm:"size:10;not null" json:"sender_type"`
	Text           string `gorm:"not null" json:"text"`
}

func (m *Message) ToPayload() map[string]interface{} {
	return map[string]interface{}{
		"conversation_id": m.ConversationID,
		"sender_type":     m.SenderType,
		"text":            m.Text,
		"timestamp":       m.CreatedAt.Format(time.RFC3339),
	}
}

// IsParty reports whether the actor belongs to this conversation.
func (c *Conversation) IsParty(actor Actor) bool {
	switch actor.Role {
	case RoleUser:
		return actor.ID == c.UserID
	case RoleDoctor:
		return actor.ID == c.DoctorID
	}
	return false
}

// FindOrCreateConversation returns the conversation for a user/doctor pair,
// creating it on first contact.
func FindOrCreateConversation(userID, doctorID uint) (Conversation, error) {
	var conversation Conversation
	err := DB.Where("user_id = ? AND doctor_id = ?", userID, doctorID).First(&conversation).Error
	if err == gorm.ErrRecordNotFound {
		conversation = Conversation{UserID: userID, DoctorID: doctorID}
		err = DB.Create(&conversation).Error
	}
	return conversation, err
}
