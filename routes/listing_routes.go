package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ListingRoutes(app *fiber.App) {
	listings := app.Group("/listings")
	listings.Get("", handlers.ListListings)

	listings.Post("/create", middleware.Protected(), middleware.TeacherRequired(), handlers.CreateListing)
	listings.Put("/:listingId", middleware.Protected(), middleware.TeacherRequired(), handlers.UpdateListing)
	listings.Delete("/:listingId", middleware.Protected(), middleware.TeacherRequired(), handlers.DeleteListing)

	listings.Get("/:listingId", handlers.GetListing)
}
