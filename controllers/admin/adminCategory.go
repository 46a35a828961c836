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

func (ctl *Controller) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := ctl.Db.Order("name asc").Find(&categories).Error; err != nil {
		log.Printf("Error fetching categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}

func (ctl *Controller) CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*adminValidator.CreateCategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := ctl.Db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category already exists!", nil)
		}
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func (ctl *Controller) UpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	var category models.Category
	if err := ctl.Db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		log.Printf("Error fetching category %d: %v", categoryID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	reqData, ok := c.Locals("validatedCategoryPatch").(*adminValidator.CategoryPatch)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Name != nil {
		category.Name = *reqData.Name
	}
	if reqData.Description != nil {
		category.Description = *reqData.Description
	}

	if err := ctl.Db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category already exists!", nil)
		}
		log.Printf("Error updating category %d: %v", category.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory is restricted: a category that still owns courses cannot
// be removed. The row is removed for real, not soft-deleted, so the name
// frees up for reuse under the unique index.
func (ctl *Controller) DeleteCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(uint)
	categoryID := c.Locals("categoryID").(int)

	var category models.Category
	if err := ctl.Db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		log.Printf("Error fetching category %d: %v", categoryID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	var courseCount int64
	if err := ctl.Db.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&courseCount).Error; err != nil {
		log.Printf("Error counting courses for category %d: %v", category.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}
	if courseCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category still has courses!", nil)
	}

	err := ctl.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&category).Error; err != nil {
			return err
		}

		return audit(tx, userID, "CATEGORY_DELETE", "category", category.ID, fiber.Map{
			"name": category.Name,
		})
	})
	if err != nil {
		log.Printf("Error deleting category %d: %v", category.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
