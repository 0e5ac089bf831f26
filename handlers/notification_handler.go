package handlers

import (
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GetMyNotifications(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var notifs []models.Notification
	database.DB.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Find(&notifs)

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&unread)

	return c.JSON(fiber.Map{"success": true, "message": "Notifications fetched", "notifications": notifs, "unread_count": unread})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	if err := database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to mark notifications as read"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "All notifications marked as read"})
}
