package adminRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/config"
	controllers "lms/controllers/admin"
	"lms/middleware"
	validators "lms/validators/admin"
)

// SetupAdminRoutes registers the back-office surface. Everything here
// requires an authenticated session with the ADMIN role, the seeder
// included.
func SetupAdminRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	ctl := controllers.New(db)

	adminGroup := app.Group("/admin", middleware.JWT(cfg, db), middleware.RequireAdmin())

	// Course CRUD
	courseGroup := adminGroup.Group("/courses")
	courseGroup.Get("/", ctl.ListCourses)
	courseGroup.Post("/", validators.CreateCourse(), ctl.CreateCourse)
	courseGroup.Get("/:id", validators.IDParam("id", "courseID", "Course ID"), ctl.GetCourse)
	courseGroup.Patch("/:id", validators.IDParam("id", "courseID", "Course ID"), validators.UpdateCourse(), ctl.UpdateCourse)
	courseGroup.Delete("/:id", validators.IDParam("id", "courseID", "Course ID"), ctl.DeleteCourse)

	// Chapter management
	courseGroup.Get("/:id/chapters", validators.IDParam("id", "courseID", "Course ID"), ctl.ListChapters)
	courseGroup.Post("/:id/chapters", validators.IDParam("id", "courseID", "Course ID"), validators.CreateChapter(), ctl.CreateChapter)

	chapterGroup := adminGroup.Group("/chapters")
	chapterGroup.Patch("/:id", validators.IDParam("id", "chapterID", "Chapter ID"), validators.UpdateChapter(), ctl.UpdateChapter)
	chapterGroup.Delete("/:id", validators.IDParam("id", "chapterID", "Chapter ID"), ctl.DeleteChapter)

	// Lesson management
	chapterGroup.Get("/:id/lessons", validators.IDParam("id", "chapterID", "Chapter ID"), ctl.ListLessons)
	chapterGroup.Post("/:id/lessons", validators.IDParam("id", "chapterID", "Chapter ID"), validators.CreateLesson(), ctl.CreateLesson)

	lessonGroup := adminGroup.Group("/lessons")
	lessonGroup.Patch("/:id", validators.IDParam("id", "lessonID", "Lesson ID"), validators.UpdateLesson(), ctl.UpdateLesson)
	lessonGroup.Delete("/:id", validators.IDParam("id", "lessonID", "Lesson ID"), ctl.DeleteLesson)

	// Categories
	categoryGroup := adminGroup.Group("/categories")
	categoryGroup.Get("/", ctl.ListCategories)
	categoryGroup.Post("/", validators.CreateCategory(), ctl.CreateCategory)
	categoryGroup.Patch("/:id", validators.IDParam("id", "categoryID", "Category ID"), validators.UpdateCategory(), ctl.UpdateCategory)
	categoryGroup.Delete("/:id", validators.IDParam("id", "categoryID", "Category ID"), ctl.DeleteCategory)

	// Reporting
	adminGroup.Get("/sales", ctl.ListSales)
	adminGroup.Get("/students", ctl.ListStudents)
	adminGroup.Get("/stats", ctl.Stats)

	// Demo data
	app.Post("/seed", middleware.JWT(cfg, db), middleware.RequireAdmin(), ctl.Seed)
}
