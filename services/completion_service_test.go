package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/swapit-app/swapit_backend/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Session{}))
	database.DB = db
}

func addSession(t *testing.T, learnerID, teacherID, listingID uuid.UUID, status string, day int) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Session{
		LearnerID:      learnerID,
		TeacherID:      teacherID,
		SkillListingID: listingID,
		ScheduledTime:  time.Date(2030, 5, day, 10, 0, 0, 0, time.UTC),
		Status:         status,
	}).Error)
}

func TestComputeCourseCompletion(t *testing.T) {
	setupDB(t)
	learnerID := uuid.New()
	teacherID := uuid.New()
	listingID := uuid.New()

	t.Run("no sessions", func(t *testing.T) {
		completion, err := services.ComputeCourseCompletion(learnerID, teacherID, listingID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, completion.TotalSessions)
		assert.Equal(t, 0, completion.Progress)
		assert.False(t, completion.IsCompleted)
		assert.False(t, completion.CanRate)
	})

	t.Run("partial progress rounds to nearest percent", func(t *testing.T) {
		addSession(t, learnerID, teacherID, listingID, "completed", 1)
		addSession(t, learnerID, teacherID, listingID, "completed", 2)
		addSession(t, learnerID, teacherID, listingID, "accepted", 3)

		completion, err := services.ComputeCourseCompletion(learnerID, teacherID, listingID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, completion.TotalSessions)
		assert.EqualValues(t, 2, completion.CompletedSessions)
		assert.Equal(t, 67, completion.Progress)
		assert.False(t, completion.IsCompleted)
	})

	t.Run("all completed", func(t *testing.T) {
		require.NoError(t, database.DB.Model(&models.Session{}).
			Where("learner_id = ?", learnerID).
			Update("status", "completed").Error)

		completion, err := services.ComputeCourseCompletion(learnerID, teacherID, listingID)
		require.NoError(t, err)
		assert.Equal(t, 100, completion.Progress)
		assert.True(t, completion.IsCompleted)
		assert.True(t, completion.CanRate)
		assert.True(t, completion.CanReview)
	})

	t.Run("other triples do not count", func(t *testing.T) {
		addSession(t, uuid.New(), teacherID, listingID, "pending", 4)

		completion, err := services.ComputeCourseCompletion(learnerID, teacherID, listingID)
		require.NoError(t, err)
		assert.EqualValues(t, 3, completion.TotalSessions)
		assert.True(t, completion.IsCompleted)
	})
}
