package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	users := app.Group("/users")
	users.Get("/teachers", handlers.ListTeachers)

	me := users.Group("/me", middleware.Protected())
	me.Get("", handlers.GetProfile)
	me.Put("", handlers.UpdateProfile)

	users.Get("/:userId", handlers.GetUserByID)
}
