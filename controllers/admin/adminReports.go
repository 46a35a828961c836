package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
)

// ListSales returns every purchase, newest first, joined with its course
// and buyer.
func (ctl *Controller) ListSales(c *fiber.Ctx) error {
	var sales []models.Purchase
	if err := ctl.Db.Preload("Course").Preload("User").
		Order("created_at desc").
		Find(&sales).Error; err != nil {
		log.Printf("Error fetching sales: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sales!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sales fetched successfully!", fiber.Map{
		"sales": sales,
	})
}

// StudentView is a user row with their purchase count.
type StudentView struct {
	models.User
	PurchaseCount int64 `json:"purchase_count"`
}

// ListStudents returns every known user, newest first, with how many
// courses each has purchased.
func (ctl *Controller) ListStudents(c *fiber.Ctx) error {
	var users []models.User
	if err := ctl.Db.Order("created_at desc").Find(&users).Error; err != nil {
		log.Printf("Error fetching students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	views := make([]StudentView, len(users))
	for i, user := range users {
		var count int64
		if err := ctl.Db.Model(&models.Purchase{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			log.Printf("Error counting purchases for user %d: %v", user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
		}
		views[i] = StudentView{User: user, PurchaseCount: count}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": views,
	})
}

// Stats summarizes the back-office dashboard numbers.
func (ctl *Controller) Stats(c *fiber.Ctx) error {
	var totalCourses, publishedCourses, totalStudents, totalSales int64
	var revenue float64

	if err := ctl.Db.Model(&models.Course{}).Count(&totalCourses).Error; err != nil {
		log.Printf("Error counting courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	if err := ctl.Db.Model(&models.Course{}).Where("is_published = ?", true).Count(&publishedCourses).Error; err != nil {
		log.Printf("Error counting published courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	if err := ctl.Db.Model(&models.User{}).Count(&totalStudents).Error; err != nil {
		log.Printf("Error counting students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	if err := ctl.Db.Model(&models.Purchase{}).Count(&totalSales).Error; err != nil {
		log.Printf("Error counting sales: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}
	if err := ctl.Db.Model(&models.Purchase{}).
		Joins("JOIN courses ON courses.id = purchases.course_id").
		Select("COALESCE(SUM(courses.price), 0)").
		Scan(&revenue).Error; err != nil {
		log.Printf("Error summing revenue: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total_courses":     totalCourses,
		"published_courses": publishedCourses,
		"total_students":    totalStudents,
		"total_sales":       totalSales,
		"revenue":           revenue,
	})
}
