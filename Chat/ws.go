package Chat

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/zygisk-enc/caresync/Models"
	"github.com/zygisk-enc/caresync/Utils/Token"
)

// TempUploadDir holds per-call artifact files shared during a video call.
// They are deleted when the call room empties.
var TempUploadDir = "temp_uploads"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Envelope is the single frame format for chat and call signaling.
type Envelope struct {
	Event          string          `json:"event"`
	ConversationID uint            `json:"conversation_id,omitempty"`
	CallID         uint            `json:"call_id,omitempty"`
	Text           string          `json:"text,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	URLs           []string        `json:"urls,omitempty"`
}

func chatRoom(conversationID uint) string { return fmt.Sprintf("chat_%d", conversationID) }
func callRoom(callID uint) string         { return fmt.Sprintf("call_%d", callID) }

// HandleWebSocket upgrades the connection and relays frames between room
// members until the client disconnects.
func HandleWebSocket(c *gin.Context) {
	actor, err := Token.ExtractActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "WebSocket upgrade failed"})
		return
	}
	defer conn.Close()

	client := newClient(conn, actor)
	log.Println("New WebSocket from:", client.SID)

	defer disconnect(client)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Println("WS disconnected:", client.SID)
			return
		}

		var envelope Envelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			log.Println("Failed to parse WS frame:", err)
			continue
		}

		handleEnvelope(client, envelope)
	}
}

func handleEnvelope(client *Client, envelope Envelope) {
	switch envelope.Event {

	case "join_chat":
		if envelope.ConversationID == 0 {
			return
		}
		Rooms.Join(chatRoom(envelope.ConversationID), client)

	case "send_message":
		if envelope.ConversationID == 0 || envelope.Text == "" {
			return
		}
		message := Models.Message{
			ConversationID: envelope.ConversationID,
			SenderType:     string(client.actor.Role),
			Text:           envelope.Text,
		}
		if err := Models.DB.Create(&message).Error; err != nil {
			log.Printf("Failed to persist chat message: %v", err)
			return
		}
		payload := message.ToPayload()
		payload["event"] = "new_message"
		Rooms.Broadcast(chatRoom(envelope.ConversationID), payload, client)

	case "join_call_room":
		if envelope.CallID == 0 {
			return
		}
		room := callRoom(envelope.CallID)
		count := Rooms.Join(room, client)
		if count == 2 {
			Rooms.Broadcast(room, gin.H{
				"event":         "peers_ready",
				"initiator_sid": client.SID,
			}, nil)
		}

	case "webrtc_signal":
		if envelope.CallID == 0 {
			return
		}
		Rooms.Broadcast(callRoom(envelope.CallID), gin.H{
			"event":    "webrtc_signal",
			"from_sid": client.SID,
			"payload":  envelope.Payload,
		}, client)

	case "share_document":
		if envelope.CallID == 0 {
			return
		}
		Rooms.Broadcast(callRoom(envelope.CallID), gin.H{
			"event": "document_shared",
			"urls":  envelope.URLs,
		}, client)

	case "leave_call_room":
		if envelope.CallID == 0 {
			return
		}
		leaveCallRoom(client, envelope.CallID)
	}
}

func leaveCallRoom(client *Client, callID uint) {
	room := callRoom(callID)
	remaining := Rooms.Leave(room, client)
	Rooms.Broadcast(room, gin.H{
		"event": "peer_left",
		"sid":   client.SID,
	}, nil)
	if remaining == 0 {
		cleanupCallArtifacts(callID)
	}
}

func disconnect(client *Client) {
	for _, room := range Rooms.LeaveAll(client) {
		Rooms.Broadcast(room, gin.H{
			"event": "peer_left",
			"sid":   client.SID,
		}, nil)
		if strings.HasPrefix(room, "call_") && Rooms.Participants(room) == 0 {
			var callID uint
			fmt.Sscanf(room, "call_%d", &callID)
			cleanupCallArtifacts(callID)
		}
	}
}

func cleanupCallArtifacts(callID uint) {
	pattern := filepath.Join(TempUploadDir, fmt.Sprintf("call_%d_*.png", callID))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return
	}
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			log.Printf("Failed to delete temporary file %s: %v", file, err)
		}
	}
}
