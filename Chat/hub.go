package Chat

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/zygisk-enc/caresync/Models"
)

var sidCounter uint64

// Client is one connected websocket participant.
type Client struct {
	conn  *websocket.Conn
	actor Models.Actor
	SID   string

	writeMu sync.Mutex
	rooms   map[string]bool
}

func newClient(conn *websocket.Conn, actor Models.Actor) *Client {
	return &Client{
		conn:  conn,
		actor: actor,
		SID:   fmt.Sprintf("%s-%d", actor, atomic.AddUint64(&sidCounter, 1)),
		rooms: make(map[string]bool),
	}
}

func (c *Client) Send(payload interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(payload)
}

// Hub is the process-local room registry. Membership is ephemeral: nothing
// survives a restart, and a briefly disconnected participant misses any
// broadcast sent while away.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

var Rooms = NewHub()

// Join adds the client to a room and returns the new member count.
func (h *Hub) Join(room string, client *Client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.rooms[room] = true
	return len(h.rooms[room])
}

// Leave removes the client from a room and returns the remaining count.
func (h *Hub) Leave(room string, client *Client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[room], client)
	delete(client.rooms, room)
	remaining := len(h.rooms[room])
	if remaining == 0 {
		delete(h.rooms, room)
	}
	return remaining
}

// LeaveAll removes a disconnected client everywhere and returns the rooms
// it was in.
func (h *Hub) LeaveAll(client *Client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var left []string
	for room := range client.rooms {
		delete(h.rooms[room], client)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
		left = append(left, room)
	}
	client.rooms = make(map[string]bool)
	return left
}

func (h *Hub) Participants(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

// Broadcast sends the payload to every room member except the excluded
// client. Only currently-connected members receive it; there is no replay.
func (h *Hub) Broadcast(room string, payload interface{}, exclude *Client) {
	h.mu.Lock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for member := range h.rooms[room] {
		if member != exclude {
			members = append(members, member)
		}
	}
	h.mu.Unlock()

	for _, member := range members {
		if err := member.Send(payload); err != nil {
			// Dead connection; the read loop cleans it up.
			continue
		}
	}
}
