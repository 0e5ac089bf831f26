package websocket

import (
	"log"
	"sync"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type MessagePayload struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Message)

// registerClient stores the connection for a user and returns the one it
// displaced, if any. A user has at most one live connection.
func registerClient(client *Client) *websocket.Conn {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	old, ok := clients[client.UserID]
	clients[client.UserID] = client.Conn
	if ok && old != client.Conn {
		return old
	}
	return nil
}

// unregisterClient removes the mapping only if it still points at this
// connection, so a stale unregister cannot evict a newer one.
func unregisterClient(client *Client) {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
		delete(clients, client.UserID)
	}
}

// RunHub relays every persisted chat message to the other connected
// participants of its chat.
func RunHub() {
	for {
		select {
		case client := <-Register:
			if displaced := registerClient(client); displaced != nil {
				displaced.Close()
			}
		case client := <-Unregister:
			unregisterClient(client)
		case message := <-Broadcast:
			var participantIDs []uuid.UUID
			err := database.DB.
				Table("chat_users").
				Where("chat_id = ?", message.ChatID).
				Pluck("user_id", &participantIDs).Error
			if err != nil {
				log.Printf("Error fetching participant IDs for chat %s: %v", message.ChatID, err)
				continue
			}

			clientsMu.RLock()
			var dead []uuid.UUID
			for _, participantID := range participantIDs {
				if participantID == message.SenderID {
					continue
				}
				if conn, ok := clients[participantID]; ok {
					if err := conn.WriteJSON(message); err != nil {
						log.Printf("Error sending message to client %s: %v", participantID, err)
						conn.Close()
						dead = append(dead, participantID)
					}
				}
			}
			clientsMu.RUnlock()

			if len(dead) > 0 {
				clientsMu.Lock()
				for _, id := range dead {
					delete(clients, id)
				}
				clientsMu.Unlock()
			}
		}
	}
}
