package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/swapit-app/swapit_backend/notifications"
)

// SendSessionReminders emails both parties of accepted sessions starting in
// roughly one hour. The 5-minute window matches the cron cadence so each
// session is reminded once.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingSessions []models.Session
	err := database.DB.
		Preload("Learner").
		Preload("Teacher").
		Preload("SkillListing").
		Where("status = ? AND scheduled_time BETWEEN ? AND ?", "accepted", lowerBound, upperBound).
		Find(&upcomingSessions).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for _, session := range upcomingSessions {
		emailSubject := "Reminder: Your Session Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Session Reminder</h1><p>Hi there,</p><p>Your session for \"%s\" is scheduled to start in one hour at %s.</p>",
			session.SkillListing.Title,
			session.ScheduledTime.Format(time.Kitchen),
		)

		go notifications.SendEmail(session.Learner.FullName, session.Learner.Email, emailSubject, emailBody)
		go notifications.SendEmail(session.Teacher.FullName, session.Teacher.Email, emailSubject, emailBody)

		database.DB.Create(&models.Notification{
			SenderID:    session.TeacherID,
			RecipientID: session.LearnerID,
			Type:        "meeting",
			Content:     "Your session for \"" + session.SkillListing.Title + "\" starts in one hour.",
		})
	}
}
