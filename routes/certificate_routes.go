package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func CertificateRoutes(app *fiber.App) {
	certificates := app.Group("/certificates", middleware.Protected())
	certificates.Get("/me", middleware.LearnerRequired(), handlers.GetMyCertificates)
}
