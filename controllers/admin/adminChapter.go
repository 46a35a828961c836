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

// ListChapters returns a course's chapters by position, lessons included.
func (ctl *Controller) ListChapters(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	var chapters []models.Chapter
	if err := ctl.Db.Where("course_id = ?", course.ID).
		Preload("Lessons", byPosition).
		Order("position asc").
		Find(&chapters).Error; err != nil {
		log.Printf("Error fetching chapters for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", fiber.Map{
		"chapters": chapters,
	})
}

func (ctl *Controller) CreateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*adminValidator.CreateChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter := models.Chapter{
		Title:       reqData.Title,
		Position:    reqData.Position,
		IsPublished: reqData.IsPublished,
		CourseID:    course.ID,
	}

	if err := ctl.Db.Create(&chapter).Error; err != nil {
		log.Printf("Error creating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

func (ctl *Controller) UpdateChapter(c *fiber.Ctx) error {
	chapterID := c.Locals("chapterID").(int)

	var chapter models.Chapter
	if err := ctl.Db.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		log.Printf("Error fetching chapter %d: %v", chapterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	reqData, ok := c.Locals("validatedChapterPatch").(*adminValidator.ChapterPatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != nil {
		chapter.Title = *reqData.Title
	}
	if reqData.Position != nil {
		chapter.Position = *reqData.Position
	}
	if reqData.IsPublished != nil {
		chapter.IsPublished = *reqData.IsPublished
	}

	if err := ctl.Db.Save(&chapter).Error; err != nil {
		log.Printf("Error updating chapter %d: %v", chapter.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// DeleteChapter cascades one level down: the chapter's lessons and their
// progress rows go with it, transactionally, with an audit row.
func (ctl *Controller) DeleteChapter(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)
	chapterID := c.Locals("chapterID").(int)

	var chapter models.Chapter
	if err := ctl.Db.First(&chapter, chapterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		log.Printf("Error fetching chapter %d: %v", chapterID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	err := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&models.Lesson{}).Where("chapter_id = ?", chapter.ID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}

		var progressCount int64
		if len(lessonIDs) > 0 {
			res := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.UserProgress{})
			if res.Error != nil {
				return res.Error
			}
			progressCount = res.RowsAffected

			if err := tx.Where("chapter_id = ?", chapter.ID).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&chapter).Error; err != nil {
			return err
		}

		return audit(tx, userID, "CHAPTER_DELETE", "chapter", chapter.ID, fiber.Map{
			"title":    chapter.Title,
			"lessons":  len(lessonIDs),
			"progress": progressCount,
		})
	})
	if err != nil {
		log.Printf("Error deleting chapter %d: %v", chapter.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}
