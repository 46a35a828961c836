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

// AdminCourseView is a course row with the counts the back-office tables
// show.
type AdminCourseView struct {
	models.Course
	ChapterCount  int64 `json:"chapter_count"`
	PurchaseCount int64 `json:"purchase_count"`
}

func (ctl *Controller) courseCounts(course *models.Course) (AdminCourseView, error) {
	view := AdminCourseView{Course: *course}

	if err := ctl.Db.Model(&models.Chapter{}).Where("course_id = ?", course.ID).Count(&view.ChapterCount).Error; err != nil {
		return view, err
	}
	if err := ctl.Db.Model(&models.Purchase{}).Where("course_id = ?", course.ID).Count(&view.PurchaseCount).Error; err != nil {
		return view, err
	}

	return view, nil
}

// ListCourses returns every course regardless of publication state, with
// category and chapter/purchase counts.
func (ctl *Controller) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := ctl.Db.Preload("Category").Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	views := make([]AdminCourseView, len(courses))
	for i := range courses {
		view, err := ctl.courseCounts(&courses[i])
		if err != nil {
			log.Printf("Error counting course %d relations: %v", courses[i].ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		views[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": views,
	})
}

// CreateCourse creates a draft course. Title and category are required by
// the validator; the category must also exist.
func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := ctl.Db.First(&category, reqData.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
		}
		log.Printf("Error fetching category %d: %v", reqData.CategoryID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		ImageURL:    reqData.ImageURL,
		Price:       reqData.Price,
		CategoryID:  category.ID,
		IsPublished: false,
	}

	if err := ctl.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	course.Category = &category

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetCourse returns the full nested course for editing: every chapter and
// lesson by position, publication flags included.
func (ctl *Controller) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.Db.Preload("Category").
		Preload("Chapters", byPosition).
		Preload("Chapters.Lessons", byPosition).
		First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	view, err := ctl.courseCounts(&course)
	if err != nil {
		log.Printf("Error counting course %d relations: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", view)
}

// UpdateCourse applies a partial patch. Only fields present in the body
// change; the validator already rejected unknown keys.
func (ctl *Controller) UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	reqData, ok := c.Locals("validatedCoursePatch").(*adminValidator.CoursePatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.CategoryID != nil {
		var category models.Category
		if err := ctl.Db.First(&category, *reqData.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
			}
			log.Printf("Error fetching category %d: %v", *reqData.CategoryID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
		}
		course.CategoryID = category.ID
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.ImageURL != nil {
		course.ImageURL = *reqData.ImageURL
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.IsPublished != nil {
		course.IsPublished = *reqData.IsPublished
	}

	if err := ctl.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes the course and everything hanging off it: chapters,
// lessons, purchases and progress rows, in one transaction, with an audit
// row recording what went away.
func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.Db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	err := ctl.Db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&models.Chapter{}).Where("course_id = ?", course.ID).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}

		var lessonIDs []uint
		if len(chapterIDs) > 0 {
			if err := tx.Model(&models.Lesson{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}
		}

		var progressCount, purchaseCount int64
		if len(lessonIDs) > 0 {
			res := tx.Where("lesson_id IN ?", lessonIDs).Delete(&models.UserProgress{})
			if res.Error != nil {
				return res.Error
			}
			progressCount = res.RowsAffected

			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}

		if len(chapterIDs) > 0 {
			if err := tx.Where("course_id = ?", course.ID).Delete(&models.Chapter{}).Error; err != nil {
				return err
			}
		}

		res := tx.Where("course_id = ?", course.ID).Delete(&models.Purchase{})
		if res.Error != nil {
			return res.Error
		}
		purchaseCount = res.RowsAffected

		if err := tx.Delete(&course).Error; err != nil {
			return err
		}

		return audit(tx, userID, "COURSE_DELETE", "course", course.ID, fiber.Map{
			"title":     course.Title,
			"chapters":  len(chapterIDs),
			"lessons":   len(lessonIDs),
			"purchases": purchaseCount,
			"progress":  progressCount,
		})
	})
	if err != nil {
		log.Printf("Error deleting course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
