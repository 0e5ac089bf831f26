package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App) {
	chat := app.Group("/chat", middleware.Protected())
	chat.Post("/chat", handlers.CreateOrGetChat)
	chat.Post("/chatsend", handlers.SendMessage)
	chat.Get("/mychats", handlers.GetMyChats)
	chat.Get("/:chatId/messages", handlers.GetChatMessages)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(handlers.ServeWs))
}
