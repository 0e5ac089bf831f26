package routes

import (
	"github.com/swapit-app/swapit_backend/handlers"
	"github.com/swapit-app/swapit_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func SkillRoutes(app *fiber.App) {
	skills := app.Group("/skills")
	skills.Get("", handlers.ListSkills)
	skills.Get("/tags", handlers.GetTagCounts)

	skills.Post("/create", middleware.Protected(), middleware.TeacherRequired(), handlers.CreateSkill)
	skills.Put("/:skillId", middleware.Protected(), middleware.TeacherRequired(), handlers.UpdateSkill)
	skills.Delete("/:skillId", middleware.Protected(), middleware.TeacherRequired(), handlers.DeleteSkill)

	skills.Get("/:skillId", handlers.GetSkill)
}
