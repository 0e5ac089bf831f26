package handlers

import (
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/swapit-app/swapit_backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FullName          *string  `json:"full_name"`
	Phone             *string  `json:"phone"`
	Bio               *string  `json:"bio"`
	Skills            []string `json:"skills"`
	ProfilePictureURL *string  `json:"profile_picture_url"`
	ResumeURL         *string  `json:"resume_url"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile fetched", "user": user})
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Skills != nil {
		user.Skills = utils.NormalizeTags(req.Skills)
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.ResumeURL != nil {
		user.ResumeURL = req.ResumeURL
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile updated", "user": user})
}

func GetUserByID(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid user ID"})
	}

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User fetched", "user": user})
}

func ListTeachers(c *fiber.Ctx) error {
	var teachers []models.User
	database.DB.Where("role = ? AND is_active = ?", "teacher", true).
		Order("created_at desc").
		Find(&teachers)

	return c.JSON(fiber.Map{"success": true, "message": "Teachers fetched", "teachers": teachers})
}
