package jobs

import (
	"log"
	"time"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
)

const notificationRetention = 30 * 24 * time.Hour

// PruneReadNotifications deletes read notifications past the retention
// window. Unread ones are kept indefinitely.
func PruneReadNotifications() {
	log.Println("Running job: PruneReadNotifications...")

	cutoff := time.Now().Add(-notificationRetention)
	result := database.DB.
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("Error pruning notifications: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Pruned %d read notification(s).", result.RowsAffected)
	}
}
