package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	adminValidator "lms/validators/admin"
)

// ListLessons returns a chapter's lessons by position.
func (ctl *Controller) ListLessons(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(int)

	var chapter models.Chapter
	if err := ctl.Db.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		log.Printf("Error fetching chapter %d: %v", chapterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	var lessons []models.Lesson
	if err := ctl.Db.Where("chapter_id = ?", chapter.ID).Order("position asc").Find(&lessons).Error; err != nil {
		log.Printf("Error fetching lessons for chapter %d: %v", chapter.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
	})
}

func (ctl *Controller) CreateLesson(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(int)

	var chapter models.Chapter
	if err := ctl.Db.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		log.Printf("Error fetching chapter %d: %v", chapterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*adminValidator.CreateLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := models.Lesson{
		Title:         reqData.Title,
		VideoURL:      reqData.VideoURL,
		Position:      reqData.Position,
		IsFreePreview: reqData.IsFreePreview,
		IsPublished:   reqData.IsPublished,
		ChapterID:     chapter.ID,
	}

	if err := ctl.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func (ctl *Controller) UpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson models.Lesson
	if err := ctl.Db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		log.Printf("Error fetching lesson %d: %v", lessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	reqData, ok := c.Locals("validatedLessonPatch").(*adminValidator.LessonPatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		lesson.Title = *reqData.Title
	}
	if reqData.VideoURL != nil {
		lesson.VideoURL = *reqData.VideoURL
	}
	if reqData.Position != nil {
		lesson.Position = *reqData.Position
	}
	if reqData.IsFreePreview != nil {
		lesson.IsFreePreview = *reqData.IsFreePreview
	}
	if reqData.IsPublished != nil {
		lesson.IsPublished = *reqData.IsPublished
	}

	if err := ctl.Db.Save(&lesson).Error; err != nil {
		log.Printf("Error updating lesson %d: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes the lesson and its progress rows together.
func (ctl *Controller) DeleteLesson(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)
	lessonID := c.Locals("lessonID").(int)

	var lesson models.Lesson
	if err := ctl.Db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		log.Printf("Error fetching lesson %d: %v", lessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	err := ctl.Db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.UserProgress{})
		if res.Error != nil {
			return res.Error
		}

		if err := tx.Delete(&lesson).Error; err != nil {
			return err
		}

		return audit(tx, userID, "LESSON_DELETE", "lesson", lesson.ID, fiber.Map{
			"title":    lesson.Title,
			"progress": res.RowsAffected,
		})
	})
	if err != nil {
		log.Printf("Error deleting lesson %d: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
