package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/swapit-app/swapit_backend/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", testJWTSecret)
	os.Exit(m.Run())
}

// setupApp wires a fresh in-memory database and a fiber app with every
// route registered. Each test gets its own database.
func setupApp(t *testing.T) *fiber.App {
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

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.SkillListing{},
		&models.RegisteredCourse{},
		&models.Session{},
		&models.Rating{},
		&models.Review{},
		&models.Notification{},
		&models.Chat{},
		&models.Message{},
		&models.Certificate{},
	))
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.SkillRoutes(app)
	routes.ListingRoutes(app)
	routes.RegistrationRoutes(app)
	routes.SessionRoutes(app)
	routes.RatingRoutes(app)
	routes.ReviewRoutes(app)
	routes.ChatRoutes(app)
	routes.NotificationRoutes(app)
	return app
}

func createUser(t *testing.T, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		FullName: "Test " + role,
		Email:    fmt.Sprintf("%s-%s@example.com", role, uuid.New().String()[:8]),
		Password: string(hashed),
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func createSkill(t *testing.T, creator models.User) models.Skill {
	t.Helper()

	skill := models.Skill{
		Name:      "Skill " + uuid.New().String()[:8],
		Category:  "programming",
		Tags:      []string{"go", "backend"},
		CreatorID: creator.ID,
	}
	require.NoError(t, database.DB.Create(&skill).Error)
	return skill
}

func createListing(t *testing.T, teacher models.User, slots []string) models.SkillListing {
	t.Helper()

	skill := createSkill(t, teacher)
	listing := models.SkillListing{
		Title:          "Listing " + uuid.New().String()[:8],
		Description:    "Hands-on lessons",
		Fee:            25,
		Duration:       "1h",
		Proficiency:    "intermediate",
		AvailableSlots: slots,
		TeacherID:      teacher.ID,
		SkillID:        skill.ID,
	}
	require.NoError(t, database.DB.Create(&listing).Error)
	return listing
}

func createSession(t *testing.T, learner, teacher models.User, listing models.SkillListing, status string, at time.Time) models.Session {
	t.Helper()

	name := listing.Title
	price := listing.Fee
	session := models.Session{
		LearnerID:      learner.ID,
		TeacherID:      teacher.ID,
		SkillListingID: listing.ID,
		ScheduledTime:  at,
		Status:         status,
		SkillName:      &name,
		Price:          &price,
	}
	require.NoError(t, database.DB.Create(&session).Error)
	return session
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}
