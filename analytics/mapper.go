package analytics

import (
	"math"
	"time"

	"finance-tracker-go-be/models"
)

// Derived figures (netProfit, currentBalance, percent change) are computed
// here and nowhere else, so no two views can disagree on a formula.

func toOverallSummary(totals FlowTotals, initialBalance float64) OverallSummary {
	return OverallSummary{
		TotalIncome:       round2(totals.Income),
		TotalExpense:      round2(totals.Expense),
		InitialBalance:    round2(initialBalance),
		CurrentNetBalance: round2(initialBalance + totals.Income - totals.Expense),
	}
}

func toWalletSummary(walletID uint, totals FlowTotals, initialBalance float64, txns []models.Transaction) WalletSummary {
	return WalletSummary{
		WalletID:       walletID,
		TotalIncome:    round2(totals.Income),
		TotalExpense:   round2(totals.Expense),
		InitialBalance: round2(initialBalance),
		CurrentBalance: round2(initialBalance + totals.Income - totals.Expense),
		Transactions:   txns,
	}
}

func toWalletOverview(row WalletOverviewRow) WalletOverview {
	return WalletOverview{
		WalletID:       row.WalletID,
		WalletName:     row.WalletName,
		InitialBalance: round2(row.InitialBalance),
		TotalIncome:    round2(row.Income),
		TotalExpense:   round2(row.Expense),
		CurrentBalance: round2(row.InitialBalance + row.Income - row.Expense),
	}
}

func toPeriodAnalytics(r DateRange, totals FlowTotals, txns []models.Transaction) PeriodAnalytics {
	p := PeriodAnalytics{
		Income:            round2(totals.Income),
		Expense:           round2(totals.Expense),
		NetProfit:         round2(totals.Income - totals.Expense),
		TransactionsCount: len(txns),
		Transactions:      txns,
	}
	if !r.Start.IsZero() {
		start := r.Start
		p.PeriodStart = &start
	}
	if !r.End.IsZero() {
		end := r.End
		p.PeriodEnd = &end
	}
	return p
}

func toTrendPoint(g Granularity, bucket time.Time, income, expense float64) TrendPoint {
	return TrendPoint{
		Period:    bucketLabel(g, bucket),
		Income:    round2(income),
		Expense:   round2(expense),
		NetProfit: round2(income - expense),
	}
}

func toCategoryBreakdown(row CategoryRow) CategoryBreakdown {
	return CategoryBreakdown{
		CategoryID:      row.CategoryID,
		CategoryName:    row.CategoryName,
		CategoryType:    row.CategoryType,
		TransactionType: row.TransactionType,
		Total:           round2(row.Total),
		Count:           row.Count,
	}
}

func toComparePeriods(current, previous PeriodAnalytics) ComparePeriods {
	return ComparePeriods{
		CurrentIncome:        current.Income,
		PreviousIncome:       previous.Income,
		IncomeChange:         round2(current.Income - previous.Income),
		IncomeChangePercent:  percentChange(previous.Income, current.Income),
		CurrentExpense:       current.Expense,
		PreviousExpense:      previous.Expense,
		ExpenseChange:        round2(current.Expense - previous.Expense),
		ExpenseChangePercent: percentChange(previous.Expense, current.Expense),
	}
}

// percentChange returns the change from previous to current in percent,
// rounded to 2 decimal places. A zero previous value maps to 0 when current
// is also zero and to 100 otherwise.
func percentChange(previous, current float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return round2((current - previous) / math.Abs(previous) * 100)
}

// bucketLabel formats a bucket start: 2006-01-02 for days and weeks, 2006-01
// for months.
func bucketLabel(g Granularity, bucket time.Time) string {
	if g == Monthly {
		return bucket.UTC().Format("2006-01")
	}
	return bucket.UTC().Format("2006-01-02")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
