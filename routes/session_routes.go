package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	sessions := app.Group("/sessions", middleware.Protected())

	sessions.Post("/create", middleware.LearnerRequired(), handlers.CreateSession)
	sessions.Get("/me", handlers.GetMySessions)
	sessions.Get("/teacher", middleware.TeacherRequired(), handlers.GetTeacherSessions)
	sessions.Get("/completion/:teacherId/:listingId", handlers.GetCourseCompletion)

	sessions.Patch("/:id/status", middleware.TeacherRequired(), handlers.UpdateSessionStatus)
	sessions.Patch("/:id/propose-reschedule", middleware.TeacherRequired(), handlers.ProposeReschedule)
	sessions.Patch("/:id/respond-reschedule", middleware.LearnerRequired(), handlers.RespondReschedule)
}
