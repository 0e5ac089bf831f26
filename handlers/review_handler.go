package handlers

import (
	"math"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/swapit-app/swapit_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	TeacherID  string `json:"teacher_id" validate:"required,uuid"`
	ListingID  string `json:"listing_id" validate:"required,uuid"`
	ReviewText string `json:"review_text" validate:"required,min=10,max=1000"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	teacherID, _ := uuid.Parse(req.TeacherID)
	listingID, _ := uuid.Parse(req.ListingID)

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ? AND role = ?", teacherID, "teacher").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Teacher not found"})
	}
	var listing models.SkillListing
	if err := database.DB.First(&listing, "id = ?", listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Listing not found"})
	}

	completion, err := services.ComputeCourseCompletion(learnerID, teacherID, listingID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to check course completion"})
	}
	if completion.TotalSessions == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "You must book at least one session before reviewing"})
	}
	if !completion.IsCompleted {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "All sessions must be completed before reviewing"})
	}

	var count int64
	database.DB.Model(&models.Review{}).
		Where("learner_id = ? AND teacher_id = ? AND listing_id = ?", learnerID, teacherID, listingID).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "You have already reviewed this course"})
	}

	newReview := models.Review{
		LearnerID:  learnerID,
		TeacherID:  teacherID,
		ListingID:  listingID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	}
	if err := database.DB.Create(&newReview).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create review"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Review submitted", "review": newReview})
}

func GetListingReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	database.DB.Preload("Learner").
		Where("listing_id = ?", c.Params("listingId")).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(fiber.Map{"success": true, "message": "Reviews fetched", "reviews": reviews})
}

// GetAverageReview mirrors the rating suppression policy but computes the
// mean on the fly; no denormalized column exists for reviews.
func GetAverageReview(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid listing ID"})
	}

	var count int64
	database.DB.Model(&models.Review{}).Where("listing_id = ?", listingID).Count(&count)

	if count < minRatingSamples {
		return c.JSON(fiber.Map{
			"success":       true,
			"message":       "Average review rating fetched",
			"averageRating": nil,
			"totalReviews":  count,
			"note":          "Average shown once at least 5 reviews exist",
		})
	}

	var result struct {
		Avg float64
	}
	database.DB.Model(&models.Review{}).
		Where("listing_id = ?", listingID).
		Select("AVG(rating) as avg").
		Scan(&result)

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Average review rating fetched",
		"averageRating": math.Round(result.Avg*10) / 10,
		"totalReviews":  count,
	})
}

type UpdateReviewRequest struct {
	ReviewText *string `json:"review_text"`
	Rating     *int    `json:"rating"`
}

func UpdateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	var review models.Review
	if err := database.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Review not found"})
	}
	if review.LearnerID != learnerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You can only update your own review"})
	}

	if req.ReviewText != nil {
		if len(*req.ReviewText) < 10 || len(*req.ReviewText) > 1000 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Review text must be between 10 and 1000 characters"})
		}
		review.ReviewText = *req.ReviewText
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Rating must be between 1 and 5"})
		}
		review.Rating = *req.Rating
	}

	if err := database.DB.Save(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update review"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Review updated", "review": review})
}

func DeleteReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var review models.Review
	if err := database.DB.First(&review, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Review not found"})
	}
	if review.LearnerID != learnerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You can only delete your own review"})
	}

	if err := database.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete review"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Review deleted"})
}
