package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finance-tracker-go-be/models"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		current  float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"from zero to something", 0, 100, 100},
		{"growth", 100, 150, 50},
		{"decline", 100, 50, -50},
		{"halved from fifty", 50, 100, 100},
		{"negative previous uses absolute base", -50, -25, 50},
		{"rounds to two decimals", 3, 4, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentChange(tt.previous, tt.current), 1e-9)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.55, round2(10.554))
	assert.Equal(t, 2.35, round2(2.346))
	assert.Equal(t, -2.35, round2(-2.346))
	assert.Equal(t, 10.0, round2(10.0001))
	assert.Equal(t, 0.0, round2(0))
}

func TestToOverallSummary_BalanceIdentity(t *testing.T) {
	summary := toOverallSummary(FlowTotals{Income: 200, Expense: 30}, 150)

	assert.Equal(t, OverallSummary{
		TotalIncome:       200,
		TotalExpense:      30,
		InitialBalance:    150,
		CurrentNetBalance: 320,
	}, summary)
	assert.Equal(t, summary.InitialBalance+summary.TotalIncome-summary.TotalExpense, summary.CurrentNetBalance)
}

func TestToWalletSummary(t *testing.T) {
	txns := []models.Transaction{{ID: 1}, {ID: 2}}
	summary := toWalletSummary(7, FlowTotals{Income: 50, Expense: 20}, 100, txns)

	assert.Equal(t, uint(7), summary.WalletID)
	assert.Equal(t, 130.0, summary.CurrentBalance)
	assert.Len(t, summary.Transactions, 2)
}

func TestToWalletOverview(t *testing.T) {
	row := WalletOverviewRow{WalletID: 3, WalletName: "Bank", InitialBalance: 100, Income: 49.999, Expense: 25}
	overview := toWalletOverview(row)

	assert.Equal(t, "Bank", overview.WalletName)
	assert.Equal(t, 100.0, overview.InitialBalance)
	assert.Equal(t, 50.0, overview.TotalIncome)
	assert.Equal(t, 25.0, overview.TotalExpense)
	assert.Equal(t, 125.0, overview.CurrentBalance, "balance identity holds on the rounded figures")
}

func TestToPeriodAnalytics(t *testing.T) {
	r := DateRange{Start: date(2025, 6, 1), End: date(2025, 7, 1)}
	txns := []models.Transaction{{ID: 1}, {ID: 2}, {ID: 3}}

	p := toPeriodAnalytics(r, FlowTotals{Income: 120, Expense: 45}, txns)

	assert.Equal(t, 75.0, p.NetProfit)
	assert.Equal(t, 3, p.TransactionsCount)
	assert.Equal(t, r.Start, *p.PeriodStart)
	assert.Equal(t, r.End, *p.PeriodEnd)
}

func TestToPeriodAnalytics_OpenEndedRange(t *testing.T) {
	p := toPeriodAnalytics(DateRange{Start: date(2025, 6, 1)}, FlowTotals{}, nil)

	assert.NotNil(t, p.PeriodStart)
	assert.Nil(t, p.PeriodEnd)
	assert.Zero(t, p.Income)
	assert.Zero(t, p.Expense)
}

func TestToTrendPoint_Labels(t *testing.T) {
	bucket := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-16", toTrendPoint(Daily, bucket, 10, 4).Period)
	assert.Equal(t, "2025-06-16", toTrendPoint(Weekly, bucket, 10, 4).Period)
	assert.Equal(t, "2025-06", toTrendPoint(Monthly, bucket, 10, 4).Period)
	assert.Equal(t, 6.0, toTrendPoint(Daily, bucket, 10, 4).NetProfit)
}

func TestToComparePeriods(t *testing.T) {
	current := PeriodAnalytics{Income: 100, Expense: 80}
	previous := PeriodAnalytics{Income: 50, Expense: 100}

	compared := toComparePeriods(current, previous)

	assert.Equal(t, 50.0, compared.IncomeChange)
	assert.Equal(t, 100.0, compared.IncomeChangePercent)
	assert.Equal(t, -20.0, compared.ExpenseChange)
	assert.Equal(t, -20.0, compared.ExpenseChangePercent)
}
