package controllers

import (
	"errors"
	"log"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	"lms/utils"
)

type Controller struct {
	Db     *gorm.DB
	Mailer *utils.EmailService
}

func New(db *gorm.DB, mailer *utils.EmailService) *Controller {
	return &Controller{Db: db, Mailer: mailer}
}

// PurchaseView is a purchase with the derived progress fields the
// dashboard renders.
type PurchaseView struct {
	models.Purchase
	TotalLessons     int `json:"total_lessons"`
	CompletedLessons int `json:"completed_lessons"`
	Progress         int `json:"progress"`
}

func publishedChapters(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true).Order("position asc")
}

func publishedLessons(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true).Order("position asc")
}

// CreatePurchase enrolls the caller in a course. Duplicates are resolved
// by the unique constraint on (user_id, course_id): the insert goes first
// and a duplicated-key error means this user already owns the course.
// Checking before inserting would leave a race window between two
// concurrent purchases.
func (ctl *Controller) CreatePurchase(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPurchase").(*struct {
		CourseID uint `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := ctl.Db.First(&course, reqData.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", reqData.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	purchase := models.Purchase{
		UserID:        userID,
		CourseID:      course.ID,
		ReceiptNumber: uuid.NewString(),
	}

	if err := ctl.Db.Create(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course already purchased", nil)
		}
		log.Printf("Error creating purchase: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	if err := ctl.Db.Preload("Course.Category").First(&purchase, purchase.ID).Error; err != nil {
		log.Printf("Error loading purchase %d: %v", purchase.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create purchase!", nil)
	}

	var user models.User
	if err := ctl.Db.First(&user, userID).Error; err == nil {
		ctl.Mailer.SendPurchaseConfirmation(user.Email, user.Name, course.Title, purchase.ReceiptNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course purchased successfully!", purchase)
}

// ListPurchases returns the caller's enrollments, newest first, each with
// the course (published chapters/lessons only) and derived progress.
func (ctl *Controller) ListPurchases(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var purchases []models.Purchase
	if err := ctl.Db.Where("user_id = ?", userID).
		Preload("Course.Category").
		Preload("Course.Chapters", publishedChapters).
		Preload("Course.Chapters.Lessons", publishedLessons).
		Order("created_at desc").
		Find(&purchases).Error; err != nil {
		log.Printf("Error fetching purchases for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	views := make([]PurchaseView, len(purchases))
	for i, purchase := range purchases {
		var lessonIDs []uint
		for _, chapter := range purchase.Course.Chapters {
			for _, lesson := range chapter.Lessons {
				lessonIDs = append(lessonIDs, lesson.ID)
			}
		}

		var completed int64
		if len(lessonIDs) > 0 {
			if err := ctl.Db.Model(&models.UserProgress{}).
				Where("user_id = ? AND lesson_id IN ? AND is_completed = ?", userID, lessonIDs, true).
				Count(&completed).Error; err != nil {
				log.Printf("Error counting progress for user %d: %v", userID, err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
			}
		}

		total := len(lessonIDs)
		progress := 0
		if total > 0 {
			progress = int(math.Round(float64(completed) / float64(total) * 100))
		}

		views[i] = PurchaseView{
			Purchase:         purchase,
			TotalLessons:     total,
			CompletedLessons: int(completed),
			Progress:         progress,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched successfully!", fiber.Map{
		"purchases": views,
	})
}
