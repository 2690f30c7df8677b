package analytics

import (
	"time"

	"github.com/google/uuid"

	"finance-tracker-go-be/models"
)

// Granularity selects the bucket size of a trend series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	return g == Daily || g == Weekly || g == Monthly
}

// Filters scopes a ledger query. A nil field means "no filter on that axis".
// Branch logic for the optional date endpoints lives in the repository, in
// one place, so every query treats ranges identically.
type Filters struct {
	WalletID  *uint
	StartDate *time.Time
	EndDate   *time.Time
}

// FiltersForRange converts a resolved DateRange into query filters.
func FiltersForRange(walletID *uint, r DateRange) Filters {
	f := Filters{WalletID: walletID}
	if !r.Start.IsZero() {
		start := r.Start
		f.StartDate = &start
	}
	if !r.End.IsZero() {
		end := r.End
		f.EndDate = &end
	}
	return f
}

// FlowTotals is the income/expense pair every summary view is built from.
// Both values are >= 0; an empty ledger yields zeros, never an error.
type FlowTotals struct {
	Income  float64
	Expense float64
}

// CategoryRow is one grouped aggregate row from the ledger, keyed by category.
type CategoryRow struct {
	CategoryID      uuid.UUID
	CategoryName    string
	CategoryType    models.CategoryType
	TransactionType models.TransactionType
	Total           float64
	Count           int64
}

// TrendRow is one raw period bucket from the ledger before zero-filling.
type TrendRow struct {
	Bucket  time.Time
	Income  float64
	Expense float64
}

// WalletOverviewRow is one raw row of the grouped wallets-overview query.
type WalletOverviewRow struct {
	WalletID       uint
	WalletName     string
	InitialBalance float64
	Income         float64
	Expense        float64
}

// OverallSummary is the all-time, all-wallet view of a user's finances.
type OverallSummary struct {
	TotalIncome       float64 `json:"totalIncome"`
	TotalExpense      float64 `json:"totalExpense"`
	InitialBalance    float64 `json:"initialBalance"`
	CurrentNetBalance float64 `json:"currentNetBalance"`
}

// WalletSummary is the all-time view of a single wallet, with its ledger.
type WalletSummary struct {
	WalletID       uint                 `json:"walletId"`
	TotalIncome    float64              `json:"totalIncome"`
	TotalExpense   float64              `json:"totalExpense"`
	InitialBalance float64              `json:"initialBalance"`
	CurrentBalance float64              `json:"currentBalance"`
	Transactions   []models.Transaction `json:"transactions"`
}

// WalletOverview is one wallet's row in the all-wallets overview.
type WalletOverview struct {
	WalletID       uint    `json:"walletId"`
	WalletName     string  `json:"walletName"`
	InitialBalance float64 `json:"initialBalance"`
	TotalIncome    float64 `json:"totalIncome"`
	TotalExpense   float64 `json:"totalExpense"`
	CurrentBalance float64 `json:"currentBalance"`
}

// PeriodAnalytics is a flow view over one date range. Balances are not
// involved: a period reports movement, not stock.
type PeriodAnalytics struct {
	PeriodStart       *time.Time           `json:"periodStart,omitempty"`
	PeriodEnd         *time.Time           `json:"periodEnd,omitempty"`
	Income            float64              `json:"income"`
	Expense           float64              `json:"expense"`
	NetProfit         float64              `json:"netProfit"`
	TransactionsCount int                  `json:"transactionsCount"`
	Transactions      []models.Transaction `json:"transactions"`
}

// TrendPoint is one bucket of a trend series.
type TrendPoint struct {
	Period    string  `json:"period"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	NetProfit float64 `json:"netProfit"`
}

// CategoryBreakdown is one category's totals within a scope and range.
type CategoryBreakdown struct {
	CategoryID      uuid.UUID              `json:"categoryId"`
	CategoryName    string                 `json:"categoryName"`
	CategoryType    models.CategoryType    `json:"categoryType"`
	TransactionType models.TransactionType `json:"transactionType"`
	Total           float64                `json:"total"`
	Count           int64                  `json:"count"`
}

// ComparePeriods pairs two period analytics with their deltas.
type ComparePeriods struct {
	CurrentIncome        float64 `json:"currentIncome"`
	PreviousIncome       float64 `json:"previousIncome"`
	IncomeChange         float64 `json:"incomeChange"`
	IncomeChangePercent  float64 `json:"incomeChangePercent"`
	CurrentExpense       float64 `json:"currentExpense"`
	PreviousExpense      float64 `json:"previousExpense"`
	ExpenseChange        float64 `json:"expenseChange"`
	ExpenseChangePercent float64 `json:"expenseChangePercent"`
}
