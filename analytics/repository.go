package analytics

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"finance-tracker-go-be/models"
)

// ErrWalletNotFound covers both a missing wallet and a wallet owned by
// another user, so callers cannot probe for other users' wallet ids.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrNoSpendingData is returned when a highest-spending-category query finds
// no expense rows at all.
var ErrNoSpendingData = errors.New("no spending data for period")

// Ledger is the aggregate/listing surface over the transaction store. All
// queries are scoped to one user and exclude soft-deleted rows.
type Ledger interface {
	SumIncomeAndExpense(userID uint, f Filters) (FlowTotals, error)
	SumByCategory(userID uint, f Filters) ([]CategoryRow, error)
	TransactionsByDateRange(userID uint, f Filters) ([]models.Transaction, error)
	TrendByPeriod(userID uint, g Granularity, window int) ([]TrendRow, error)
}

// WalletStore is the wallet-side collaborator: initial balances, ownership
// checks, and the grouped overview aggregate.
type WalletStore interface {
	WalletByID(userID, walletID uint) (*models.Wallet, error)
	TotalInitialBalance(userID uint, walletID *uint) (float64, error)
	Overview(userID uint) ([]WalletOverviewRow, error)
}

// Repository implements Ledger and WalletStore on GORM/Postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps a GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// applyFilters adds the optional wallet and date conditions. Date bounds are
// half-open: start inclusive, end exclusive.
func applyFilters(q *gorm.DB, f Filters) *gorm.DB {
	if f.WalletID != nil {
		q = q.Where("transactions.wallet_id = ?", *f.WalletID)
	}
	if f.StartDate != nil {
		q = q.Where("transactions.date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("transactions.date < ?", *f.EndDate)
	}
	return q
}

// SumIncomeAndExpense returns the income and expense totals for the scope in
// a single query. Missing rows yield zeros.
func (r *Repository) SumIncomeAndExpense(userID uint, f Filters) (FlowTotals, error) {
	var totals FlowTotals
	q := r.db.Model(&models.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS expense`).
		Where("transactions.user_id = ?", userID)
	if err := applyFilters(q, f).Scan(&totals).Error; err != nil {
		return FlowTotals{}, fmt.Errorf("sum income and expense: %w", err)
	}
	return totals, nil
}

// SumByCategory groups matching transactions by category, ordered by total
// descending. Transactions without a category never appear here.
func (r *Repository) SumByCategory(userID uint, f Filters) ([]CategoryRow, error) {
	rows := []CategoryRow{}
	q := r.db.Model(&models.Transaction{}).
		Select(`categories.id AS category_id,
			categories.name AS category_name,
			categories.type AS category_type,
			transactions.type AS transaction_type,
			COALESCE(SUM(transactions.amount), 0) AS total,
			COUNT(transactions.id) AS count`).
		Joins("JOIN categories ON categories.id = transactions.category_id AND categories.deleted_at IS NULL").
		Where("transactions.user_id = ?", userID)
	q = applyFilters(q, f).
		Group("categories.id, categories.name, categories.type, transactions.type").
		Order("total DESC")
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	return rows, nil
}

// TransactionsByDateRange lists matching transactions, newest first.
func (r *Repository) TransactionsByDateRange(userID uint, f Filters) ([]models.Transaction, error) {
	txns := []models.Transaction{}
	q := r.db.Where("user_id = ?", userID)
	q = applyFilters(q, f)
	if err := q.Order("date DESC").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("transactions by date range: %w", err)
	}
	return txns, nil
}

// TrendByPeriod aggregates the trailing `window` buckets ending now. Only
// buckets with activity come back from the database; the service zero-fills
// the gaps.
func (r *Repository) TrendByPeriod(userID uint, g Granularity, window int) ([]TrendRow, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid granularity %q", g)
	}
	if window < 1 {
		return nil, fmt.Errorf("invalid trend window %d", window)
	}
	windowStart := addBuckets(bucketStart(g, time.Now()), g, -(window - 1))

	rows := []TrendRow{}
	err := r.db.Model(&models.Transaction{}).
		Select(fmt.Sprintf(`DATE_TRUNC('%s', transactions.date AT TIME ZONE 'UTC') AS bucket,
			COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS expense`, g.truncUnit())).
		Where("transactions.user_id = ? AND transactions.date >= ?", userID, windowStart).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("trend by period: %w", err)
	}
	return rows, nil
}

// WalletByID fetches one wallet, folding ownership mismatches into not-found.
func (r *Repository) WalletByID(userID, walletID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("wallet by id: %w", err)
	}
	return &wallet, nil
}

// TotalInitialBalance sums initial balances across the user's wallets, or
// returns a single wallet's value when scoped.
func (r *Repository) TotalInitialBalance(userID uint, walletID *uint) (float64, error) {
	if walletID != nil {
		wallet, err := r.WalletByID(userID, *walletID)
		if err != nil {
			return 0, err
		}
		return wallet.InitialBalance, nil
	}
	var total float64
	err := r.db.Model(&models.Wallet{}).
		Select("COALESCE(SUM(initial_balance), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("total initial balance: %w", err)
	}
	return total, nil
}

// Overview computes per-wallet totals in one grouped query so the view does
// not degrade into a query per wallet.
func (r *Repository) Overview(userID uint) ([]WalletOverviewRow, error) {
	rows := []WalletOverviewRow{}
	err := r.db.Model(&models.Wallet{}).
		Select(`wallets.id AS wallet_id,
			wallets.name AS wallet_name,
			wallets.initial_balance AS initial_balance,
			COALESCE(SUM(CASE WHEN transactions.type = 'income' THEN transactions.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN transactions.amount ELSE 0 END), 0) AS expense`).
		Joins("LEFT JOIN transactions ON transactions.wallet_id = wallets.id AND transactions.deleted_at IS NULL").
		Where("wallets.user_id = ?", userID).
		Group("wallets.id, wallets.name, wallets.initial_balance").
		Order("wallets.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("wallets overview: %w", err)
	}
	return rows, nil
}

func (g Granularity) truncUnit() string {
	switch g {
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	default:
		return "day"
	}
}
