package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType determines the sign of a transaction's effect on a balance.
// Amounts are always stored positive; the type carries the direction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// WalletType describes the kind of account a wallet represents.
type WalletType string

const (
	WalletTypeWallet WalletType = "wallet"
	WalletTypeBank   WalletType = "bank"
	WalletTypeCash   WalletType = "cash"
	WalletTypeCard   WalletType = "card"
)

// CategoryType restricts which transaction types a category may be attached to.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// User represents a user in the system. Identity is established by the auth
// collaborator; this service only stores the account record.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Wallet represents an account holding funds. Exactly one wallet per user is
// the default, created automatically on registration with a zero balance.
type Wallet struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;uniqueIndex:idx_wallet_name_user" json:"user_id"`
	Name           string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_wallet_name_user" json:"name"`
	Type           WalletType     `gorm:"type:varchar(16);default:wallet" json:"type"`
	InitialBalance float64        `gorm:"type:decimal(10,2);default:0" json:"initial_balance"`
	IsDefault      bool           `gorm:"default:false" json:"is_default"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Category labels income or expense transactions. A category's type must
// match the type of every transaction attached to it.
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_category_name_user" json:"user_id"`
	Name      string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_category_name_user" json:"name"`
	Type      CategoryType   `gorm:"type:varchar(16);not null" json:"type"`
	Color     string         `gorm:"type:varchar(7)" json:"color"`
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the category id client-side.
func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Transaction is one ledger entry. Amount is always positive; Date is stored
// as a point in time and compared in UTC everywhere.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	WalletID    uint            `gorm:"not null;index" json:"wallet_id"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Amount      float64         `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type        TransactionType `gorm:"type:varchar(16);not null" json:"type"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
