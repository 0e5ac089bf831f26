package handlers

import (
	"github.com/swapit-app/swapit_backend/database"
	"github.com/swapit-app/swapit_backend/models"
	"github.com/swapit-app/swapit_backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=255"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Level           string   `json:"level"`
	YearsExperience int      `json:"years_experience" validate:"gte=0"`
}

func CreateSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	var count int64
	database.DB.Model(&models.Skill{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "A skill with this name already exists"})
	}

	newSkill := models.Skill{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Tags:            utils.NormalizeTags(req.Tags),
		Level:           req.Level,
		YearsExperience: req.YearsExperience,
		CreatorID:       teacherID,
	}
	if err := database.DB.Create(&newSkill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create skill"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Skill created", "skill": newSkill})
}

func ListSkills(c *fiber.Ctx) error {
	query := database.DB.Preload("Creator")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if creator := c.Query("creator"); creator != "" {
		query = query.Where("creator_id = ?", creator)
	}

	var skills []models.Skill
	query.Order("created_at desc").Find(&skills)

	return c.JSON(fiber.Map{"success": true, "message": "Skills fetched", "skills": skills})
}

func GetSkill(c *fiber.Ctx) error {
	var skill models.Skill
	if err := database.DB.Preload("Creator").First(&skill, "id = ?", c.Params("skillId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Skill not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Skill fetched", "skill": skill})
}

type UpdateSkillRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	Tags            []string `json:"tags"`
	Level           *string  `json:"level"`
	YearsExperience *int     `json:"years_experience"`
}

func UpdateSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", c.Params("skillId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Skill not found"})
	}
	if skill.CreatorID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You do not own this skill"})
	}

	var req UpdateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if req.Name != nil && *req.Name != skill.Name {
		var count int64
		database.DB.Model(&models.Skill{}).Where("name = ? AND id <> ?", *req.Name, skill.ID).Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "A skill with this name already exists"})
		}
		skill.Name = *req.Name
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}
	if req.Category != nil {
		skill.Category = *req.Category
	}
	if req.Tags != nil {
		skill.Tags = utils.NormalizeTags(req.Tags)
	}
	if req.Level != nil {
		skill.Level = *req.Level
	}
	if req.YearsExperience != nil {
		if *req.YearsExperience < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Years of experience cannot be negative"})
		}
		skill.YearsExperience = *req.YearsExperience
	}

	if err := database.DB.Save(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update skill"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Skill updated", "skill": skill})
}

func DeleteSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	teacherID, _ := uuid.Parse(claims["user_id"].(string))

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", c.Params("skillId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Skill not found"})
	}
	if skill.CreatorID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "You do not own this skill"})
	}

	if err := database.DB.Delete(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to delete skill"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Skill deleted"})
}

// GetTagCounts aggregates tags across all skills, case-insensitively.
func GetTagCounts(c *fiber.Ctx) error {
	var skills []models.Skill
	database.DB.Select("tags").Find(&skills)

	tagLists := make([][]string, 0, len(skills))
	for _, s := range skills {
		tagLists = append(tagLists, s.Tags)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Tags fetched", "tags": utils.CountTags(tagLists...)})
}
