package progressRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/config"
	controllers "lms/controllers/progress"
	"lms/middleware"
	validators "lms/validators/progress"
)

// SetupProgressRoutes registers per-lesson completion tracking for the
// authenticated caller.
func SetupProgressRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	ctl := controllers.New(db)

	progressGroup := app.Group("/progress", middleware.JWT(cfg, db))
	progressGroup.Put("/", validators.SetProgress(), ctl.SetProgress)
	progressGroup.Get("/", validators.GetProgress(), ctl.GetProgress)
}
