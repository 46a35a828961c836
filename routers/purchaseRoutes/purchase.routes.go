package purchaseRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/config"
	controllers "lms/controllers/purchase"
	"lms/middleware"
	"lms/utils"
	validators "lms/validators/purchase"
)

// SetupPurchaseRoutes registers the enrollment flow. The buyer is always
// the authenticated caller.
func SetupPurchaseRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer *utils.EmailService) {
	ctl := controllers.New(db, mailer)

	purchaseGroup := app.Group("/purchases", middleware.JWT(cfg, db))
	purchaseGroup.Post("/", validators.CreatePurchase(), ctl.CreatePurchase)
	purchaseGroup.Get("/", ctl.ListPurchases)
}
