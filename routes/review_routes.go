package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	reviews := app.Group("/reviews")
	reviews.Get("/average/:listingId", handlers.GetAverageReview)
	reviews.Get("/listing/:listingId", handlers.GetListingReviews)

	reviews.Post("/create", middleware.Protected(), middleware.LearnerRequired(), handlers.CreateReview)
	reviews.Put("/:id", middleware.Protected(), middleware.LearnerRequired(), handlers.UpdateReview)
	reviews.Delete("/:id", middleware.Protected(), middleware.LearnerRequired(), handlers.DeleteReview)
}
