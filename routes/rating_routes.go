package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func RatingRoutes(app *fiber.App) {
	ratings := app.Group("/ratings")
	ratings.Get("/average/:listingId", handlers.GetAverageRating)
	ratings.Get("/listing/:listingId", handlers.GetListingRatings)

	ratings.Post("/create", middleware.Protected(), middleware.LearnerRequired(), handlers.CreateRating)
	ratings.Put("/:id", middleware.Protected(), middleware.LearnerRequired(), handlers.UpdateRating)
	ratings.Delete("/:id", middleware.Protected(), middleware.LearnerRequired(), handlers.DeleteRating)
}
