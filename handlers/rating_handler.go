package handlers

import (
	"errors"
	"math"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Averages are hidden from clients until this many samples exist.
const minRatingSamples = 5

// recomputeListingAverage refreshes the denormalized mean on the listing
// from all current ratings, rounded to 1 decimal. Runs inside the caller's
// transaction so the rating write and the aggregate stay consistent.
func recomputeListingAverage(tx *gorm.DB, listingID uuid.UUID) error {
	var result struct {
		Avg float64
	}
	if err := tx.Model(&models.Rating{}).
		Where("listing_id = ?", listingID).
		Select("COALESCE(AVG(rating), 0) as avg").
		Scan(&result).Error; err != nil {
		return err
	}

	rounded := math.Round(result.Avg*10) / 10
	return tx.Model(&models.SkillListing{}).Where("id = ?", listingID).Update("average_rating", rounded).Error
}

type CreateRatingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
}

func CreateRating(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	listingID, _ := uuid.Parse(req.ListingID)

	var listing models.SkillListing
	if err := database.DB.First(&listing, "id = ?", listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Listing not found"})
	}

	var registration models.RegisteredCourse
	if err := database.DB.
		Where("student_id = ? AND course_id = ?", learnerID, listingID).
		First(&registration).Error; err != nil || registration.Status != "completed" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You must complete this course before rating it"})
	}

	var newRating models.Rating
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Rating{}).
			Where("learner_id = ? AND listing_id = ?", learnerID, listingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("you have already rated this listing")
		}

		newRating = models.Rating{
			LearnerID: learnerID,
			ListingID: listingID,
			Rating:    req.Rating,
		}
		if err := tx.Create(&newRating).Error; err != nil {
			return err
		}

		return recomputeListingAverage(tx, listingID)
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Rating submitted", "rating": newRating})
}

// GetAverageRating exposes the mean only once enough samples exist; below
// the threshold clients get null plus the raw count. Display policy, not a
// data rule.
func GetAverageRating(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid listing ID"})
	}

	var count int64
	database.DB.Model(&models.Rating{}).Where("listing_id = ?", listingID).Count(&count)

	if count < minRatingSamples {
		return c.JSON(fiber.Map{
			"success":       true,
			"message":       "Average rating fetched",
			"averageRating": nil,
			"totalRatings":  count,
			"note":          "Average shown once at least 5 ratings exist",
		})
	}

	var result struct {
		Avg float64
	}
	database.DB.Model(&models.Rating{}).
		Where("listing_id = ?", listingID).
		Select("AVG(rating) as avg").
		Scan(&result)

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Average rating fetched",
		"averageRating": math.Round(result.Avg*10) / 10,
		"totalRatings":  count,
	})
}

func GetListingRatings(c *fiber.Ctx) error {
	var ratings []models.Rating
	database.DB.Preload("Learner").
		Where("listing_id = ?", c.Params("listingId")).
		Order("created_at desc").
		Find(&ratings)

	return c.JSON(fiber.Map{"success": true, "message": "Ratings fetched", "ratings": ratings})
}

type UpdateRatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

func UpdateRating(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var rating models.Rating
	if err := database.DB.First(&rating, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Rating not found"})
	}
	if rating.LearnerID != learnerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You can only update your own rating"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		rating.Rating = req.Rating
		if err := tx.Save(&rating).Error; err != nil {
			return err
		}
		return recomputeListingAverage(tx, rating.ListingID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update rating"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Rating updated", "rating": rating})
}

func DeleteRating(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var rating models.Rating
	if err := database.DB.First(&rating, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Rating not found"})
	}
	if rating.LearnerID != learnerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You can only delete your own rating"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&rating).Error; err != nil {
			return err
		}
		return recomputeListingAverage(tx, rating.ListingID)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete rating"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Rating deleted"})
}
