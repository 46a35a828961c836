package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	adminRoutes "lms/routers/adminRoutes"
	catalogRoutes "lms/routers/catalogRoutes"
	progressRoutes "lms/routers/progressRoutes"
	purchaseRoutes "lms/routers/purchaseRoutes"
	"lms/utils"
)

// Cfg returns a config suitable for tests: fixed JWT key, mail disabled.
func Cfg() *config.Config {
	return &config.Config{
		Port:        "0",
		JWTKey:      "test-secret",
		EmailSender: "test@example.com",
	}
}

// DB opens a fresh in-memory sqlite database with the full schema. A
// single connection, otherwise every pooled connection would see its own
// empty memory database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// App wires the full route surface the way main does.
func App(tb testing.TB, db *gorm.DB, cfg *config.Config) *fiber.App {
	tb.Helper()

	app := fiber.New()
	mailer := utils.NewEmailService(cfg)

	catalogRoutes.SetupCatalogRoutes(app, db)
	purchaseRoutes.SetupPurchaseRoutes(app, db, cfg, mailer)
	progressRoutes.SetupProgressRoutes(app, db, cfg)
	adminRoutes.SetupAdminRoutes(app, db, cfg)

	return app
}

// Token mints a bearer token the way the external identity provider
// would.
func Token(tb testing.TB, cfg *config.Config, email, name string) string {
	tb.Helper()

	token, err := middleware.GenerateJWT(cfg, email, name)
	if err != nil {
		tb.Fatalf("failed to mint token: %v", err)
	}
	return token
}

// AdminToken creates an ADMIN user row and returns a token for it.
func AdminToken(tb testing.TB, db *gorm.DB, cfg *config.Config, email string) string {
	tb.Helper()

	admin := models.User{Email: email, Name: "Admin", Role: "ADMIN"}
	if err := db.Create(&admin).Error; err != nil {
		tb.Fatalf("failed to create admin user: %v", err)
	}
	return Token(tb, cfg, email, "Admin")
}

// Envelope is the response shape every handler returns.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DoJSON performs a request against the app and decodes the envelope.
func DoJSON(tb testing.TB, app *fiber.App, method, path, token string, body interface{}) (int, Envelope) {
	tb.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			tb.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		tb.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		tb.Fatalf("failed to decode response for %s %s: %v", method, path, err)
	}

	return resp.StatusCode, env
}

// Decode unmarshals an envelope's data payload into dst.
func Decode(tb testing.TB, env Envelope, dst interface{}) {
	tb.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		tb.Fatalf("failed to decode envelope data: %v", err)
	}
}

// Catalog is the fixture set most tests share: one published course with
// a mix of published and unpublished chapters/lessons, plus an
// unpublished course.
type Catalog struct {
	Category         models.Category
	Published        models.Course
	Draft            models.Course
	Chapter          models.Chapter // published, position 1
	HiddenChapter    models.Chapter // unpublished, position 2
	LessonPreview    models.Lesson  // published, free preview
	LessonSecond     models.Lesson  // published
	LessonDraft      models.Lesson  // unpublished, in published chapter
	LessonInHiddenCh models.Lesson  // published, in unpublished chapter
}

// SeedCatalog builds the fixture set. Visible lesson count for the
// published course is exactly 2.
func SeedCatalog(tb testing.TB, db *gorm.DB) *Catalog {
	tb.Helper()

	cat := models.Category{Name: "Frontend", Description: "Frontend courses"}
	if err := db.Create(&cat).Error; err != nil {
		tb.Fatalf("failed to create category: %v", err)
	}

	published := models.Course{Title: "Course C1", Price: 100, IsPublished: true, CategoryID: cat.ID}
	draft := models.Course{Title: "Course C2", Price: 50, IsPublished: false, CategoryID: cat.ID}
	if err := db.Create(&published).Error; err != nil {
		tb.Fatalf("failed to create course: %v", err)
	}
	if err := db.Create(&draft).Error; err != nil {
		tb.Fatalf("failed to create course: %v", err)
	}

	chapter := models.Chapter{Title: "Chapter Ch1", Position: 1, IsPublished: true, CourseID: published.ID}
	hidden := models.Chapter{Title: "Chapter Ch2", Position: 2, IsPublished: false, CourseID: published.ID}
	if err := db.Create(&chapter).Error; err != nil {
		tb.Fatalf("failed to create chapter: %v", err)
	}
	if err := db.Create(&hidden).Error; err != nil {
		tb.Fatalf("failed to create chapter: %v", err)
	}

	lessons := []*models.Lesson{
		{Title: "Lesson L1", Position: 1, IsFreePreview: true, IsPublished: true, ChapterID: chapter.ID},
		{Title: "Lesson L2", Position: 2, IsPublished: true, ChapterID: chapter.ID},
		{Title: "Lesson L3", Position: 3, IsPublished: false, ChapterID: chapter.ID},
		{Title: "Lesson L4", Position: 1, IsPublished: true, ChapterID: hidden.ID},
	}
	for _, lesson := range lessons {
		if err := db.Create(lesson).Error; err != nil {
			tb.Fatalf("failed to create lesson: %v", err)
		}
	}

	return &Catalog{
		Category:         cat,
		Published:        published,
		Draft:            draft,
		Chapter:          chapter,
		HiddenChapter:    hidden,
		LessonPreview:    *lessons[0],
		LessonSecond:     *lessons[1],
		LessonDraft:      *lessons[2],
		LessonInHiddenCh: *lessons[3],
	}
}
