package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func RegistrationRoutes(app *fiber.App) {
	registrations := app.Group("/registrations", middleware.Protected())
	registrations.Post("/create", middleware.LearnerRequired(), handlers.RegisterCourse)
	registrations.Get("/me", handlers.GetMyRegistrations)
	registrations.Get("/listing/:listingId", middleware.TeacherRequired(), handlers.GetListingRegistrations)
	registrations.Patch("/:id/status", middleware.TeacherRequired(), handlers.UpdateRegistrationStatus)
}
