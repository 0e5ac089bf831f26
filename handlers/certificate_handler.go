package handlers

import (
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GetMyCertificates(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var certificates []models.Certificate
	database.DB.Preload("Teacher").Preload("Listing").
		Where("learner_id = ?", learnerID).
		Order("completion_date desc").
		Find(&certificates)

	return c.JSON(fiber.Map{"success": true, "message": "Certificates fetched", "certificates": certificates})
}
