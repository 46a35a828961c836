package progressValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// SetProgress validates the completion toggle body. IsCompleted stays a
// pointer: an omitted value means "toggle" downstream, not "false".
func SetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonID    uint  `json:"lessonId"`
			IsCompleted *bool `json:"isCompleted"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LessonID == 0 {
			errors["lessonId"] = "Lesson ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// GetProgress validates the optional courseId query filter.
func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Query("courseId"))
		if courseIDStr == "" {
			return c.Next()
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
