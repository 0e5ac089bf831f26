package handlers

import (
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	ws "github.com/swapit-app/swapit_backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func chatParticipantIDs(chat models.Chat) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(chat.Users))
	for _, u := range chat.Users {
		ids = append(ids, u.ID)
	}
	return ids
}

func isChatParticipant(chat models.Chat, userID uuid.UUID) bool {
	for _, u := range chat.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

type CreateChatRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// CreateOrGetChat is an idempotent find-or-create of the unique two-user
// chat for the caller and the peer, order-independent.
func CreateOrGetChat(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	currentID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	peerID, _ := uuid.Parse(req.UserID)

	if peerID == currentID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot open a chat with yourself"})
	}

	var chat models.Chat
	err := database.DB.
		Joins("JOIN chat_users cu1 ON cu1.chat_id = chats.id AND cu1.user_id = ?", currentID).
		Joins("JOIN chat_users cu2 ON cu2.chat_id = chats.id AND cu2.user_id = ?", peerID).
		Preload("Users").
		First(&chat).Error
	if err == nil {
		return c.JSON(fiber.Map{"success": true, "message": "Chat fetched", "chat": chat})
	}

	var current, peer models.User
	if err := database.DB.First(&current, "id = ?", currentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}
	if err := database.DB.First(&peer, "id = ?", peerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Recipient not found"})
	}

	newChat := models.Chat{Users: []*models.User{&current, &peer}}
	if err := database.DB.Create(&newChat).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create chat"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Chat created", "chat": newChat})
}

type SendMessageRequest struct {
	Chat    string `json:"chat" validate:"required,uuid"`
	Content string `json:"content" validate:"required"`
}

func SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	senderID, _ := uuid.Parse(claims["user_id"].(string))

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	chatID, _ := uuid.Parse(req.Chat)

	var chat models.Chat
	if err := database.DB.Preload("Users").First(&chat, "id = ?", chatID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Chat not found"})
	}
	if !isChatParticipant(chat, senderID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You are not a participant of this chat"})
	}

	message := models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  req.Content,
		ReadBy:   []string{senderID.String()},
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to send message"})
	}

	chat.LatestMessageID = &message.ID
	database.DB.Model(&models.Chat{}).Where("id = ?", chat.ID).Update("latest_message_id", message.ID)

	// One notification per other participant; failures stay silent.
	for _, participantID := range chatParticipantIDs(chat) {
		if participantID == senderID {
			continue
		}
		database.DB.Create(&models.Notification{
			SenderID:    senderID,
			RecipientID: participantID,
			Type:        "message",
			Content:     "You have a new message.",
		})
	}

	// Live relay is best-effort; skip when the hub is not running.
	select {
	case ws.Broadcast <- &message:
	default:
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Message sent", "chat_message": message})
}

// GetChatMessages lists a chat's messages oldest-first and, as a side
// effect, marks the newest message read by the requester.
func GetChatMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	chatID, err := uuid.Parse(c.Params("chatId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid chat ID"})
	}

	var chat models.Chat
	if err := database.DB.Preload("Users").First(&chat, "id = ?", chatID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Chat not found"})
	}
	if !isChatParticipant(chat, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You are not a participant of this chat"})
	}

	var messages []models.Message
	if err := database.DB.Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch messages"})
	}

	if len(messages) > 0 {
		latest := &messages[len(messages)-1]
		if !latest.ReadByUser(userID) {
			latest.ReadBy = append(latest.ReadBy, userID.String())
			database.DB.Model(&models.Message{}).Where("id = ?", latest.ID).Update("read_by", latest.ReadBy)
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "Messages fetched", "messages": messages})
}

func GetMyChats(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var chats []models.Chat
	database.DB.
		Joins("JOIN chat_users cu ON cu.chat_id = chats.id AND cu.user_id = ?", userID).
		Preload("Users").
		Preload("LatestMessage").
		Order("chats.updated_at desc").
		Find(&chats)

	return c.JSON(fiber.Map{"success": true, "message": "Chats fetched", "chats": chats})
}
