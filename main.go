package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms/config"
	"lms/database"
	adminRoutes "lms/routers/adminRoutes"
	catalogRoutes "lms/routers/catalogRoutes"
	progressRoutes "lms/routers/progressRoutes"
	purchaseRoutes "lms/routers/purchaseRoutes"
	"lms/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	mailer := utils.NewEmailService(cfg)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	catalogRoutes.SetupCatalogRoutes(app, db)
	purchaseRoutes.SetupPurchaseRoutes(app, db, cfg, mailer)
	progressRoutes.SetupProgressRoutes(app, db, cfg)
	adminRoutes.SetupAdminRoutes(app, db, cfg)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
