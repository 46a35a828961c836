package catalogRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/catalog"
	validators "lms/validators/catalog"
)

// SetupCatalogRoutes registers the public catalog. No authentication: the
// catalog and course detail pages are the marketing surface.
func SetupCatalogRoutes(app *fiber.App, db *gorm.DB) {
	ctl := controllers.New(db)

	courseGroup := app.Group("/courses")
	courseGroup.Get("/", ctl.ListCourses)
	courseGroup.Get("/:id", validators.CourseID(), ctl.GetCourse)
}
