package handlers

import (
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type RegisterCourseRequest struct {
	CourseID      string `json:"course_id" validate:"required,uuid"`
	ContactNumber string `json:"contact_number" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	TransactionID string `json:"transaction_id" validate:"required"`
}

func RegisterCourse(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req RegisterCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	courseID, _ := uuid.Parse(req.CourseID)

	var listing models.SkillListing
	if err := database.DB.First(&listing, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Course not found"})
	}

	var count int64
	database.DB.Model(&models.RegisteredCourse{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "You are already registered for this course"})
	}

	registration := models.RegisteredCourse{
		StudentID:     studentID,
		CourseID:      courseID,
		ContactNumber: req.ContactNumber,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Status:        "pending",
	}
	if err := database.DB.Create(&registration).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to register for course"})
	}

	notification := models.Notification{
		SenderID:    studentID,
		RecipientID: listing.TeacherID,
		Type:        "course_status",
		Content:     "A learner has registered for your course \"" + listing.Title + "\".",
	}
	// Notification failure never unwinds the registration.
	database.DB.Create(&notification)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Course registration submitted", "registration": registration})
}

func GetMyRegistrations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var registrations []models.RegisteredCourse
	database.DB.Preload("Course.Teacher").Preload("Course.Skill").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&registrations)

	return c.JSON(fiber.Map{"success": true, "message": "Registrations fetched", "registrations": registrations})
}

func GetListingRegistrations(c *fiber.Ctx) error {
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

	var registrations []models.RegisteredCourse
	database.DB.Preload("Student").
		Where("course_id = ?", listing.ID).
		Order("created_at desc").
		Find(&registrations)

	return c.JSON(fiber.Map{"success": true, "message": "Registrations fetched", "registrations": registrations})
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending registered completed"`
}

func UpdateRegistrationStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateRegistrationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var registration models.RegisteredCourse
	if err := database.DB.Preload("Course").First(&registration, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Registration not found"})
	}
	if registration.Course.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You do not own the course for this registration"})
	}

	registration.Status = req.Status
	if err := database.DB.Save(&registration).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update registration"})
	}

	notification := models.Notification{
		SenderID:    teacherID,
		RecipientID: registration.StudentID,
		Type:        "course_status",
		Content:     "Your registration for \"" + registration.Course.Title + "\" is now " + req.Status + ".",
	}
	database.DB.Create(&notification)

	return c.JSON(fiber.Map{"success": true, "message": "Registration updated", "registration": registration})
}
