package adminValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

type CreateChapterRequest struct {
	Title       string `json:"title"`
	Position    int    `json:"position"`
	IsPublished bool   `json:"isPublished"`
}

type ChapterPatch struct {
	Title       *string `json:"title"`
	Position    *int    `json:"position"`
	IsPublished *bool   `json:"isPublished"`
}

func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateChapterRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.Position <= 0 {
			errors["position"] = "Position must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func UpdateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChapterPatch)

		if err := strictDecode(c.Body(), reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title must not be empty!"
		}

		if reqData.Position != nil && *reqData.Position <= 0 {
			errors["position"] = "Position must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChapterPatch", reqData)
		return c.Next()
	}
}
