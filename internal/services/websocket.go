package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID       uint
	UserType string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

// Hub maintains the set of active clients and broadcasts messages.
// Presence is mirrored into Redis on register/unregister so peer
// instances can answer "is this user online" without a shared map.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			if err := SetUserOnline(context.Background(), client.ID); err != nil {
				log.Printf("Failed to record presence for user %d: %v", client.ID, err)
			}
			log.Printf("User %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			remaining := h.connectionsForLocked(client.ID)
			h.mutex.Unlock()
			if remaining == 0 {
				if err := SetUserOffline(context.Background(), client.ID); err != nil {
					log.Printf("Failed to clear presence for user %d: %v", client.ID, err)
				}
			}
			log.Printf("User %d disconnected", client.ID)
		}
	}
}

// connectionsForLocked counts open connections for a user. Caller holds
// the mutex.
func (h *Hub) connectionsForLocked(userID uint) int {
	n := 0
	for client := range h.clients {
		if client.ID == userID {
			n++
		}
	}
	return n
}

// BroadcastToUser sends a message to a specific user
func (h *Hub) BroadcastToUser(userID uint, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.ID == userID {
			select {
			case client.Send <- message:
			default:
				// Channel full, drop the event; notifications are
				// fire-and-forget
				log.Printf("Warning: could not send to user %d (channel full)", client.ID)
			}
		}
	}
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// BidEvent notifies a party about a bid placement or decision
type BidEvent struct {
	BidID     uint    `json:"bidId"`
	VehicleID uint    `json:"vehicleId"`
	Amount    float64 `json:"amount"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Status    string  `json:"status"`
}

// TripEvent notifies both parties about trip progress
type TripEvent struct {
	BookingID   uint    `json:"bookingId"`
	VehicleID   uint    `json:"vehicleId"`
	TripStatus  string  `json:"tripStatus"`
	Odometer    float64 `json:"odometer"`
	FinalAmount float64 `json:"finalAmount,omitempty"`
}

// SendToUser marshals and delivers a typed event to one user
func (h *Hub) SendToUser(userID uint, messageType string, data interface{}) {
	message := WebSocketMessage{
		Type: messageType,
		Data: data,
	}

	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", messageType, err)
		return
	}

	h.BroadcastToUser(userID, payload)
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, userType string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:       userID,
		UserType: userType,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump drains the connection until it closes. All marketplace
// mutations arrive over HTTP; inbound socket frames are ignored.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
