package handlers

import (
	"errors"
	"time"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/swapit-app/swapit_backend/notifications"
	"github.com/swapit-app/swapit_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	slotDateLayout = "2006-01-02"
	slotTimeLayout = "15:04"
)

func parseSlotDateTime(slotDate, slotTime string) (time.Time, error) {
	return time.Parse(slotDateLayout+" "+slotTimeLayout, slotDate+" "+slotTime)
}

func slotAvailable(listing models.SkillListing, slotTime string) bool {
	for _, s := range listing.AvailableSlots {
		if s == slotTime {
			return true
		}
	}
	return false
}

func removeSlot(slots []string, slotTime string) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if s != slotTime {
			out = append(out, s)
		}
	}
	return out
}

type CreateSessionRequest struct {
	TeacherID      string  `json:"teacher_id" validate:"required,uuid"`
	SkillListingID string  `json:"skill_listing_id" validate:"required,uuid"`
	SlotDate       string  `json:"slot_date" validate:"required,datetime=2006-01-02"`
	SlotTime       string  `json:"slot_time" validate:"required,datetime=15:04"`
	Note           *string `json:"note,omitempty"`
}

func CreateSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	listingID, _ := uuid.Parse(req.SkillListingID)
	teacherID, _ := uuid.Parse(req.TeacherID)

	var listing models.SkillListing
	if err := database.DB.First(&listing, "id = ?", listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Skill listing not found"})
	}
	if listing.TeacherID != teacherID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Teacher does not match this listing"})
	}
	if !slotAvailable(listing, req.SlotTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Selected time slot is not available for this listing"})
	}

	scheduledTime, err := parseSlotDateTime(req.SlotDate, req.SlotTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid slot date or time"})
	}

	skillName := listing.Title
	price := listing.Fee
	session := models.Session{
		LearnerID:      learnerID,
		TeacherID:      listing.TeacherID,
		SkillListingID: listing.ID,
		ScheduledTime:  scheduledTime,
		Status:         "pending",
		Note:           req.Note,
		SkillName:      &skillName,
		Price:          &price,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Session{}).
			Where("skill_listing_id = ? AND scheduled_time = ?", listing.ID, scheduledTime).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("a session is already booked for this listing at that time")
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	notification := models.Notification{
		SenderID:    learnerID,
		RecipientID: listing.TeacherID,
		Type:        "meeting",
		Content:     "New session request for \"" + listing.Title + "\" on " + scheduledTime.Format("Jan 2 at 15:04") + ".",
	}
	// Session stays committed even when the notification write fails.
	database.DB.Create(&notification)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Session booked", "session": session})
}

// sessionTransitions is the teacher-driven part of the lifecycle; reschedule
// states are handled by the propose/respond handlers.
var sessionTransitions = map[string][]string{
	"pending":  {"accepted", "rejected"},
	"accepted": {"cancelled", "completed"},
}

type UpdateSessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected cancelled completed"`
}

func UpdateSessionStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateSessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var session models.Session
	if err := database.DB.Preload("Learner").Preload("Teacher").Preload("SkillListing").
		First(&session, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Session not found"})
	}
	if session.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You are not the teacher for this session"})
	}

	allowed := false
	for _, next := range sessionTransitions[session.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot change a " + session.Status + " session to " + req.Status})
	}

	session.Status = req.Status
	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update session"})
	}

	notifType := "meeting"
	if req.Status == "completed" {
		notifType = "course_status"
	}
	notification := models.Notification{
		SenderID:    teacherID,
		RecipientID: session.LearnerID,
		Type:        notifType,
		Content:     "Your session for \"" + session.SkillListing.Title + "\" is now " + req.Status + ".",
	}
	database.DB.Create(&notification)

	if req.Status == "completed" {
		go services.CheckAndGenerateCertificate(session)
		go notifications.SendEmail(session.Learner.FullName, session.Learner.Email,
			"Session Completed",
			"<h1>Session Completed</h1><p>Your session for \""+session.SkillListing.Title+"\" has been marked as completed.</p>")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Session status updated", "session": session})
}

type ProposeRescheduleRequest struct {
	NewDate string `json:"new_date" validate:"required,datetime=2006-01-02"`
	NewTime string `json:"new_time" validate:"required,datetime=15:04"`
}

func ProposeReschedule(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var req ProposeRescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var session models.Session
	if err := database.DB.Preload("SkillListing").First(&session, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Session not found"})
	}
	if session.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You are not the teacher for this session"})
	}
	// Only a confirmed session can move; a fresh proposal may replace an
	// open one. Terminal and pending sessions stay where they are.
	if session.Status != "accepted" && session.Status != "rescheduled" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Only accepted sessions can be rescheduled"})
	}

	proposedTime, err := parseSlotDateTime(req.NewDate, req.NewTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid proposed date or time"})
	}

	var count int64
	database.DB.Model(&models.Session{}).
		Where("skill_listing_id = ? AND scheduled_time = ? AND id <> ?", session.SkillListingID, proposedTime, session.ID).
		Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Another session is already booked at the proposed time"})
	}

	// Older sessions may predate the snapshot columns.
	if session.SkillName == nil {
		session.SkillName = &session.SkillListing.Title
	}
	if session.Price == nil {
		session.Price = &session.SkillListing.Fee
	}

	now := time.Now()
	session.Reschedule = models.RescheduleRequest{
		NewDate:     &req.NewDate,
		NewTime:     &req.NewTime,
		RequestedAt: &now,
	}
	session.Status = "rescheduled"

	if err := database.DB.Save(&session).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to save reschedule proposal"})
	}

	notification := models.Notification{
		SenderID:    teacherID,
		RecipientID: session.LearnerID,
		Type:        "meeting",
		Content:     "The teacher proposed rescheduling your session for \"" + session.SkillListing.Title + "\" to " + req.NewDate + " " + req.NewTime + ".",
	}
	database.DB.Create(&notification)

	return c.JSON(fiber.Map{"success": true, "message": "Reschedule proposed", "session": session})
}

type RespondRescheduleRequest struct {
	Accept bool `json:"accept"`
}

func RespondReschedule(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var req RespondRescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	var session models.Session
	if err := database.DB.First(&session, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Session not found"})
	}
	if session.LearnerID != learnerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You are not the learner for this session"})
	}
	if session.Status != "rescheduled" || session.Reschedule.NewTime == nil || session.Reschedule.NewDate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No pending reschedule proposal for this session"})
	}

	if !req.Accept {
		// The previously confirmed time stands.
		session.Status = "accepted"
		session.Reschedule = models.RescheduleRequest{}
		if err := database.DB.Save(&session).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update session"})
		}
		notifyRescheduleOutcome(session, "declined")
		return c.JSON(fiber.Map{"success": true, "message": "Reschedule declined", "session": session})
	}

	newDate := *session.Reschedule.NewDate
	newTime := *session.Reschedule.NewTime
	newScheduledTime, err := parseSlotDateTime(newDate, newTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Stored reschedule proposal is invalid"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var listing models.SkillListing
		if err := tx.First(&listing, "id = ?", session.SkillListingID).Error; err != nil {
			return err
		}
		if !slotAvailable(listing, newTime) {
			return errors.New("the proposed slot is no longer available")
		}

		listing.AvailableSlots = removeSlot(listing.AvailableSlots, newTime)
		if err := tx.Save(&listing).Error; err != nil {
			return err
		}

		session.ScheduledTime = newScheduledTime
		session.Status = "accepted"
		session.Reschedule = models.RescheduleRequest{}
		return tx.Save(&session).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	notifyRescheduleOutcome(session, "accepted")
	return c.JSON(fiber.Map{"success": true, "message": "Reschedule accepted", "session": session})
}

func notifyRescheduleOutcome(session models.Session, outcome string) {
	notification := models.Notification{
		SenderID:    session.LearnerID,
		RecipientID: session.TeacherID,
		Type:        "meeting",
		Content:     "The learner " + outcome + " your reschedule proposal.",
	}
	database.DB.Create(&notification)
}

func GetMySessions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	var sessions []models.Session
	database.DB.Preload("Teacher").Preload("SkillListing").
		Where("learner_id = ?", learnerID).
		Order("scheduled_time desc").
		Find(&sessions)

	return c.JSON(fiber.Map{"success": true, "message": "Sessions fetched", "sessions": sessions})
}

func GetTeacherSessions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var sessions []models.Session
	database.DB.Preload("Learner").Preload("SkillListing").
		Where("teacher_id = ?", teacherID).
		Order("scheduled_time desc").
		Find(&sessions)

	return c.JSON(fiber.Map{"success": true, "message": "Sessions fetched", "sessions": sessions})
}

// GetCourseCompletion reports the caller's progress against a teacher's
// listing. Zero sessions reports success with is_completed=false.
func GetCourseCompletion(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	learnerID, _ := uuid.Parse(claims["user_id"].(string))

	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid teacher ID"})
	}
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid listing ID"})
	}

	completion, err := services.ComputeCourseCompletion(learnerID, teacherID, listingID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute course completion"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Course completion computed", "completion": completion})
}
