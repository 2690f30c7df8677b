package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finance-tracker-go-be/database"
	"finance-tracker-go-be/models"
)

// RegisterRequest is the payload for creating an account. Credentials are
// handled by the auth collaborator, not here.
type RegisterRequest struct {
	Email string `json:"email"`
}

var defaultCategories = []models.Category{
	{Name: "Salary", Type: models.CategoryTypeIncome, Color: "#4CAF50", IsDefault: true},
	{Name: "Other Income", Type: models.CategoryTypeIncome, Color: "#8BC34A", IsDefault: true},
	{Name: "Food", Type: models.CategoryTypeExpense, Color: "#FF5722", IsDefault: true},
	{Name: "Transport", Type: models.CategoryTypeExpense, Color: "#2196F3", IsDefault: true},
	{Name: "Bills", Type: models.CategoryTypeExpense, Color: "#9C27B0", IsDefault: true},
	{Name: "Shopping", Type: models.CategoryTypeExpense, Color: "#FFC107", IsDefault: true},
}

// RegisterUser creates an account with its default wallet and starter
// categories.
func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	user := models.User{Email: req.Email}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet := models.Wallet{
			UserID:         user.ID,
			Name:           "Default Wallet",
			Type:           models.WalletTypeWallet,
			InitialBalance: 0,
			IsDefault:      true,
		}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
		for _, cat := range defaultCategories {
			cat.UserID = user.ID
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		log.Printf("Failed to register user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register user"})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// CurrentUser returns the account record for the authenticated user.
func CurrentUser(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}
	return c.JSON(user)
}
