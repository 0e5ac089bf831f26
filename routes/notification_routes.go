package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	notifications := app.Group("/notifications", middleware.Protected())
	notifications.Get("/me", handlers.GetMyNotifications)
	notifications.Patch("/read-all", handlers.MarkAllNotificationsRead)
}
