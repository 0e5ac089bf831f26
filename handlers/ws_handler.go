package handlers

import (
	"errors"
	"fmt"
	"log"

	config "github.com/swapit-app/swapit_backend/configs"
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	ws "github.com/swapit-app/swapit_backend/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ServeWs authenticates a websocket client with a first-frame token message,
// then relays incoming chat messages through the hub.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &ws.Client{UserID: userID, Conn: c}
	ws.Register <- client
	defer func() {
		ws.Unregister <- client
		c.Close()
	}()

	for {
		var msg ws.MessagePayload
		if err := c.ReadJSON(&msg); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		chatID, err := uuid.Parse(msg.ChatID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid chat ID"})
			continue
		}

		dbMessage := models.Message{
			ChatID:   chatID,
			SenderID: userID,
			Content:  msg.Content,
			ReadBy:   []string{userID.String()},
		}
		if err := database.DB.Create(&dbMessage).Error; err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
			continue
		}
		database.DB.Model(&models.Chat{}).Where("id = ?", chatID).Update("latest_message_id", dbMessage.ID)

		ws.Broadcast <- &dbMessage
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
