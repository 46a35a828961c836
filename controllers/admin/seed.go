package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
)

// Seed populates the demo data set. The seeder runs in one transaction, so
// a partial failure leaves nothing behind, and is safe to call repeatedly.
func (ctl *Controller) Seed(c *fiber.Ctx) error {
	result, err := database.Seed(ctl.Db)
	if err != nil {
		log.Printf("Error seeding database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to seed database!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Database seeded successfully!", fiber.Map{
		"created": result,
	})
}
