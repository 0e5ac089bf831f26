package handlers

import (
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title          string                 `json:"title" validate:"required,min=3,max=255"`
	Description    string                 `json:"description"`
	Fee            float64                `json:"fee" validate:"gte=0"`
	Duration       string                 `json:"duration"`
	PaymentMethods []models.PaymentMethod `json:"payment_methods"`
	Proficiency    string                 `json:"proficiency" validate:"required,oneof=beginner intermediate advanced expert"`
	ListingImgURL  *string                `json:"listing_img_url"`
	AvailableSlots []string               `json:"available_slots"`
	SkillID        string                 `json:"skill_id" validate:"required,uuid"`
}

func CreateListing(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	skillID, _ := uuid.Parse(req.SkillID)

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", skillID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Skill not found"})
	}
	if skill.CreatorID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You can only create listings for your own skills"})
	}

	newListing := models.SkillListing{
		Title:          req.Title,
		Description:    req.Description,
		Fee:            req.Fee,
		Duration:       req.Duration,
		PaymentMethods: req.PaymentMethods,
		Proficiency:    req.Proficiency,
		ListingImgURL:  req.ListingImgURL,
		AvailableSlots: req.AvailableSlots,
		TeacherID:      teacherID,
		SkillID:        skillID,
	}
	if err := database.DB.Create(&newListing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create listing"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Listing created", "listing": newListing})
}

func ListListings(c *fiber.Ctx) error {
	query := database.DB.Preload("Teacher").Preload("Skill")
	if teacher := c.Query("teacher"); teacher != "" {
		query = query.Where("teacher_id = ?", teacher)
	}
	if skill := c.Query("skill"); skill != "" {
		query = query.Where("skill_id = ?", skill)
	}

	var listings []models.SkillListing
	query.Order("created_at desc").Find(&listings)

	return c.JSON(fiber.Map{"success": true, "message": "Listings fetched", "listings": listings})
}

func GetListing(c *fiber.Ctx) error {
	var listing models.SkillListing
	if err := database.DB.Preload("Teacher").Preload("Skill").First(&listing, "id = ?", c.Params("listingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Listing not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Listing fetched", "listing": listing})
}

type UpdateListingRequest struct {
	Title          *string                `json:"title"`
	Description    *string                `json:"description"`
	Fee            *float64               `json:"fee"`
	Duration       *string                `json:"duration"`
	PaymentMethods []models.PaymentMethod `json:"payment_methods"`
	Proficiency    *string                `json:"proficiency"`
	ListingImgURL  *string                `json:"listing_img_url"`
	AvailableSlots []string               `json:"available_slots"`
}

func UpdateListing(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var listing models.SkillListing
	if err := database.DB.First(&listing, "id = ?", c.Params("listingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Listing not found"})
	}
	if listing.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You do not own this listing"})
	}

	var req UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Fee != nil {
		if *req.Fee < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Fee cannot be negative"})
		}
		listing.Fee = *req.Fee
	}
	if req.Duration != nil {
		listing.Duration = *req.Duration
	}
	if req.PaymentMethods != nil {
		listing.PaymentMethods = req.PaymentMethods
	}
	if req.Proficiency != nil {
		listing.Proficiency = *req.Proficiency
	}
	if req.ListingImgURL != nil {
		listing.ListingImgURL = req.ListingImgURL
	}
	if req.AvailableSlots != nil {
		listing.AvailableSlots = req.AvailableSlots
	}

	if err := database.DB.Save(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update listing"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Listing updated", "listing": listing})
}

func DeleteListing(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var listing models.SkillListing
	if err := database.DB.First(&listing, "id = ?", c.Params("listingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Listing not found"})
	}
	if listing.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You do not own this listing"})
	}

	if err := database.DB.Delete(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete listing"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Listing deleted"})
}
