package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
)

// Controller serves the public catalog. Only published entities are
// visible, applied transitively: an unpublished chapter hides its lessons
// whatever their own flag says.
type Controller struct {
	Db *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{Db: db}
}

// CourseView is a catalog course annotated with its visible lesson count.
type CourseView struct {
	models.Course
	TotalLessons int `json:"total_lessons"`
}

func publishedChapters(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true).Order("position asc")
}

func publishedLessons(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true).Order("position asc")
}

func countLessons(course *models.Course) int {
	total := 0
	for _, chapter := range course.Chapters {
		total += len(chapter.Lessons)
	}
	return total
}

// ListCourses returns every published course, newest first, with its
// category and published chapters/lessons.
func (ctl *Controller) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := ctl.Db.Where("is_published = ?", true).
		Preload("Category").
		Preload("Chapters", publishedChapters).
		Preload("Chapters.Lessons", publishedLessons).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	views := make([]CourseView, len(courses))
	for i := range courses {
		views[i] = CourseView{Course: courses[i], TotalLessons: countLessons(&courses[i])}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": views,
	})
}

// GetCourse returns one published course with the same visibility
// filtering as the listing. Unpublished courses are not reachable by id;
// drafts must not leak through direct links.
func (ctl *Controller) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := ctl.Db.Where("id = ? AND is_published = ?", courseID, true).
		Preload("Category").
		Preload("Chapters", publishedChapters).
		Preload("Chapters.Lessons", publishedLessons).
		First(&course).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error fetching course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	view := CourseView{Course: course, TotalLessons: countLessons(&course)}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", view)
}
