package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"finance-tracker-go-be/database"
	"finance-tracker-go-be/models"
)

// CategoryRequest is the create payload for categories.
type CategoryRequest struct {
	Name  string              `json:"name"`
	Type  models.CategoryType `json:"type"`
	Color string              `json:"color"`
}

// ListCategories returns the user's active categories.
func ListCategories(c *fiber.Ctx) error {
	userID := currentUserID(c)

	categories := []models.Category{}
	if err := database.DB.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}

// CreateCategory creates a category, restoring a soft-deleted one when it
// already holds the requested name.
func CreateCategory(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category name is required"})
	}
	if req.Type != models.CategoryTypeIncome && req.Type != models.CategoryTypeExpense {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category type must be income or expense"})
	}

	var existing models.Category
	err := database.DB.Unscoped().
		Where("user_id = ? AND name = ?", userID, req.Name).
		First(&existing).Error
	if err == nil {
		if !existing.DeletedAt.Valid {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category name already exists"})
		}
		existing.Type = req.Type
		existing.Color = req.Color
		existing.DeletedAt = gorm.DeletedAt{}
		if err := database.DB.Unscoped().Save(&existing).Error; err != nil {
			log.Printf("Failed to restore category: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
		}
		return c.Status(fiber.StatusCreated).JSON(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}

	category := models.Category{
		UserID: userID,
		Name:   req.Name,
		Type:   req.Type,
		Color:  req.Color,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		log.Printf("Failed to create category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategory returns one category owned by the user.
func GetCategory(c *fiber.Ctx) error {
	userID := currentUserID(c)
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var category models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch category"})
	}
	return c.JSON(category)
}

// UpdateCategory updates name or color. The type is fixed after creation so
// existing transactions cannot fall out of sync with their category.
func UpdateCategory(c *fiber.Ctx) error {
	userID := currentUserID(c)
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var category models.Category
	if err := database.DB.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch category"})
	}

	if req.Name != nil && *req.Name != category.Name {
		var count int64
		database.DB.Model(&models.Category{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, *req.Name, category.ID).
			Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Category name already exists"})
		}
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := database.DB.Save(&category).Error; err != nil {
		log.Printf("Failed to update category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update category"})
	}
	return c.JSON(category)
}

// DeleteCategory soft-deletes a category. Its transactions keep their rows
// but drop out of category breakdowns.
func DeleteCategory(c *fiber.Ctx) error {
	userID := currentUserID(c)
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	result := database.DB.Where("id = ? AND user_id = ?", categoryID, userID).Delete(&models.Category{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete category"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
