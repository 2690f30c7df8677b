package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"finance-tracker-go-be/database"
	"finance-tracker-go-be/models"
)

// WalletRequest is the create/update payload for wallets.
type WalletRequest struct {
	Name           string            `json:"name"`
	Type           models.WalletType `json:"type"`
	InitialBalance float64           `json:"initial_balance"`
}

// ListWallets returns the user's active wallets.
func ListWallets(c *fiber.Ctx) error {
	userID := currentUserID(c)

	wallets := []models.Wallet{}
	if err := database.DB.Where("user_id = ?", userID).Order("id ASC").Find(&wallets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch wallets"})
	}
	return c.JSON(wallets)
}

// CreateWallet creates a wallet. If a soft-deleted wallet holds the requested
// name it is restored and updated instead, keeping the per-user name
// uniqueness intact.
func CreateWallet(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req WalletRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Wallet name is required"})
	}
	if req.Type == "" {
		req.Type = models.WalletTypeWallet
	}

	// Look for an existing wallet with that name, soft-deleted included.
	var existing models.Wallet
	err := database.DB.Unscoped().
		Where("user_id = ? AND name = ?", userID, req.Name).
		First(&existing).Error
	if err == nil {
		if !existing.DeletedAt.Valid {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Wallet name already exists"})
		}
		existing.Type = req.Type
		existing.InitialBalance = req.InitialBalance
		existing.DeletedAt = gorm.DeletedAt{}
		if err := database.DB.Unscoped().Save(&existing).Error; err != nil {
			log.Printf("Failed to restore wallet: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create wallet"})
		}
		return c.Status(fiber.StatusCreated).JSON(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create wallet"})
	}

	wallet := models.Wallet{
		UserID:         userID,
		Name:           req.Name,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
	}
	if err := database.DB.Create(&wallet).Error; err != nil {
		log.Printf("Failed to create wallet: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create wallet"})
	}
	return c.Status(fiber.StatusCreated).JSON(wallet)
}

// GetWallet returns one wallet owned by the user.
func GetWallet(c *fiber.Ctx) error {
	userID := currentUserID(c)
	walletID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}

	var wallet models.Wallet
	if err := database.DB.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wallet not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch wallet"})
	}
	return c.JSON(wallet)
}

// UpdateWallet updates name, type, or initial balance.
func UpdateWallet(c *fiber.Ctx) error {
	userID := currentUserID(c)
	walletID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}

	var req struct {
		Name           *string            `json:"name"`
		Type           *models.WalletType `json:"type"`
		InitialBalance *float64           `json:"initial_balance"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var wallet models.Wallet
	if err := database.DB.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wallet not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch wallet"})
	}

	if req.Name != nil && *req.Name != wallet.Name {
		var count int64
		database.DB.Model(&models.Wallet{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, *req.Name, wallet.ID).
			Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Wallet name already exists"})
		}
		wallet.Name = *req.Name
	}
	if req.Type != nil {
		wallet.Type = *req.Type
	}
	if req.InitialBalance != nil {
		wallet.InitialBalance = *req.InitialBalance
	}

	if err := database.DB.Save(&wallet).Error; err != nil {
		log.Printf("Failed to update wallet: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update wallet"})
	}
	return c.JSON(wallet)
}

// DeleteWallet soft-deletes a wallet. Its transactions stay in the ledger but
// the wallet no longer contributes to overviews or balances.
func DeleteWallet(c *fiber.Ctx) error {
	userID := currentUserID(c)
	walletID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}

	result := database.DB.Where("id = ? AND user_id = ?", walletID, userID).Delete(&models.Wallet{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete wallet"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wallet not found"})
	}
	return c.JSON(fiber.Map{"message": "Wallet deleted successfully"})
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
