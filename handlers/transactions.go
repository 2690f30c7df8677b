package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"finance-tracker-go-be/analytics"
	"finance-tracker-go-be/database"
	"finance-tracker-go-be/models"
)

// TransactionRequest is the create payload for transactions.
type TransactionRequest struct {
	WalletID    uint                   `json:"wallet_id"`
	CategoryID  *uuid.UUID             `json:"category_id"`
	Amount      float64                `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
}

// ListTransactions returns the user's transactions, newest first, optionally
// filtered by wallet and date range.
func ListTransactions(c *fiber.Ctx) error {
	userID := currentUserID(c)

	filters, err := filtersFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := analytics.NewRepository(database.DB)
	txns, err := repo.TransactionsByDateRange(userID, filters)
	if err != nil {
		log.Printf("Failed to fetch transactions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}
	return c.JSON(txns)
}

// CreateTransaction records a ledger entry after checking wallet and category
// ownership and the category/type invariants.
func CreateTransaction(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if status, msg := validateTransaction(userID, &req); msg != "" {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	txn := models.Transaction{
		UserID:      userID,
		WalletID:    req.WalletID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date.UTC(),
		Description: req.Description,
	}
	if err := database.DB.Create(&txn).Error; err != nil {
		log.Printf("Failed to create transaction: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// GetTransaction returns one transaction owned by the user.
func GetTransaction(c *fiber.Ctx) error {
	userID := currentUserID(c)
	txnID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var txn models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", txnID, userID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transaction"})
	}
	return c.JSON(txn)
}

// UpdateTransaction rewrites an entry, revalidating ownership and invariants.
func UpdateTransaction(c *fiber.Ctx) error {
	userID := currentUserID(c)
	txnID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var txn models.Transaction
	if err := database.DB.Where("id = ? AND user_id = ?", txnID, userID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transaction"})
	}

	req := TransactionRequest{
		WalletID:    txn.WalletID,
		CategoryID:  txn.CategoryID,
		Amount:      txn.Amount,
		Type:        txn.Type,
		Date:        txn.Date,
		Description: txn.Description,
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if status, msg := validateTransaction(userID, &req); msg != "" {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	txn.WalletID = req.WalletID
	txn.CategoryID = req.CategoryID
	txn.Amount = req.Amount
	txn.Type = req.Type
	txn.Date = req.Date.UTC()
	txn.Description = req.Description

	if err := database.DB.Save(&txn).Error; err != nil {
		log.Printf("Failed to update transaction: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update transaction"})
	}
	return c.JSON(txn)
}

// DeleteTransaction soft-deletes an entry; aggregates stop counting it
// immediately.
func DeleteTransaction(c *fiber.Ctx) error {
	userID := currentUserID(c)
	txnID, err := parseUintParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	result := database.DB.Where("id = ? AND user_id = ?", txnID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}

// validateTransaction enforces the ledger invariants: positive amount, known
// type, owned wallet, and a category whose type matches the transaction type.
// Transfers may not carry a category.
func validateTransaction(userID uint, req *TransactionRequest) (int, string) {
	if req.Amount <= 0 {
		return fiber.StatusBadRequest, "Amount must be positive"
	}
	switch req.Type {
	case models.TypeIncome, models.TypeExpense, models.TypeTransfer:
	default:
		return fiber.StatusBadRequest, "Type must be income, expense, or transfer"
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	var wallet models.Wallet
	if err := database.DB.Where("id = ? AND user_id = ?", req.WalletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.StatusNotFound, "Wallet not found"
		}
		return fiber.StatusInternalServerError, "Failed to validate wallet"
	}

	if req.Type == models.TypeTransfer && req.CategoryID != nil {
		return fiber.StatusBadRequest, "Transfer transactions cannot have a category"
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := database.DB.Where("id = ? AND user_id = ?", *req.CategoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.StatusNotFound, "Category not found"
			}
			return fiber.StatusInternalServerError, "Failed to validate category"
		}
		if string(category.Type) != string(req.Type) {
			return fiber.StatusBadRequest, "Category type does not match transaction type"
		}
	}
	return 0, ""
}
