package adminValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

type CreateLessonRequest struct {
	Title         string `json:"title"`
	VideoURL      string `json:"videoUrl"`
	Position      int    `json:"position"`
	IsFreePreview bool   `json:"isFreePreview"`
	IsPublished   bool   `json:"isPublished"`
}

type LessonPatch struct {
	Title         *string `json:"title"`
	VideoURL      *string `json:"videoUrl"`
	Position      *int    `json:"position"`
	IsFreePreview *bool   `json:"isFreePreview"`
	IsPublished   *bool   `json:"isPublished"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)

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

		if reqData.VideoURL != "" {
			if err := validate.Var(reqData.VideoURL, "url"); err != nil {
				errors["videoUrl"] = "Video URL must be a valid URL!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonPatch)

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

		if reqData.VideoURL != nil && *reqData.VideoURL != "" {
			if err := validate.Var(*reqData.VideoURL, "url"); err != nil {
				errors["videoUrl"] = "Video URL must be a valid URL!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonPatch", reqData)
		return c.Next()
	}
}
