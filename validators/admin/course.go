package adminValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CreateCourseRequest is the admin create body. Courses are created as
// drafts; publication is a separate patch.
type CreateCourseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"categoryId"`
}

// CoursePatch enumerates every mutable course field. Nil means "leave
// unchanged"; unknown JSON keys are rejected at decode time.
type CoursePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Price       *float64 `json:"price"`
	IsPublished *bool    `json:"isPublished"`
	CategoryID  *uint    `json:"categoryId"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.CategoryID == 0 {
			errors["categoryId"] = "Category ID is required!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price must not be negative!"
		}

		if reqData.ImageURL != "" {
			if err := validate.Var(reqData.ImageURL, "url"); err != nil {
				errors["imageUrl"] = "Image URL must be a valid URL!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePatch)

		if err := strictDecode(c.Body(), reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title must not be empty!"
		}

		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price must not be negative!"
		}

		if reqData.CategoryID != nil && *reqData.CategoryID == 0 {
			errors["categoryId"] = "Invalid Category ID!"
		}

		if reqData.ImageURL != nil && *reqData.ImageURL != "" {
			if err := validate.Var(*reqData.ImageURL, "url"); err != nil {
				errors["imageUrl"] = "Image URL must be a valid URL!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCoursePatch", reqData)
		return c.Next()
	}
}
