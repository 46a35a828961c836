package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
)

type Controller struct {
	Db *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{Db: db}
}

// SetProgress creates or mutates the caller's completion flag for one
// lesson. The tri-state rule is deliberate: no existing record means
// create (defaulting to completed), an omitted value on an existing record
// toggles it, an explicit value sets it. Clients toggle by calling without
// a body value.
func (ctl *Controller) SetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		LessonID    uint  `json:"lessonId"`
		IsCompleted *bool `json:"isCompleted"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson models.Lesson
	if err := ctl.Db.First(&lesson, reqData.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		log.Printf("Error fetching lesson %d: %v", reqData.LessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	var progress models.UserProgress
	err := ctl.Db.Where("user_id = ? AND lesson_id = ?", userID, reqData.LessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserProgress{
			UserID:      userID,
			LessonID:    reqData.LessonID,
			IsCompleted: true,
		}
		if reqData.IsCompleted != nil {
			progress.IsCompleted = *reqData.IsCompleted
		}

		createErr := ctl.Db.Create(&progress).Error
		if createErr == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			log.Printf("Error creating progress: %v", createErr)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}

		// Lost the race against a concurrent first toggle; fall through to
		// the update path against the row that won.
		if err := ctl.Db.Where("user_id = ? AND lesson_id = ?", userID, reqData.LessonID).First(&progress).Error; err != nil {
			log.Printf("Error refetching progress: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	} else if err != nil {
		log.Printf("Error fetching progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if reqData.IsCompleted != nil {
		progress.IsCompleted = *reqData.IsCompleted
	} else {
		progress.IsCompleted = !progress.IsCompleted
	}

	if err := ctl.Db.Model(&progress).Update("is_completed", progress.IsCompleted).Error; err != nil {
		log.Printf("Error updating progress %d: %v", progress.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", progress)
}

// GetProgress lists the caller's progress rows, optionally restricted to
// one course. The course filter resolves the course's lesson-id set
// through its chapters first, then filters on it.
func (ctl *Controller) GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	query := ctl.Db.Where("user_id = ?", userID)

	if courseID, ok := c.Locals("courseID").(int); ok {
		var lessonIDs []uint
		if err := ctl.Db.Model(&models.Lesson{}).
			Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
			Where("chapters.course_id = ?", courseID).
			Pluck("lessons.id", &lessonIDs).Error; err != nil {
			log.Printf("Error resolving lessons for course %d: %v", courseID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		query = query.Where("lesson_id IN ?", lessonIDs)
	}

	var rows []models.UserProgress
	if err := query.Preload("Lesson").Find(&rows).Error; err != nil {
		log.Printf("Error fetching progress for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress": rows,
	})
}
