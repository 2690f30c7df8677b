package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-tracker-go-be/models"
)

// stubLedger replays canned aggregate rows and records the filters it was
// queried with. Successive SumIncomeAndExpense calls pop from the totals
// queue so compare tests can serve two different periods.
type stubLedger struct {
	totals     []FlowTotals
	totalsIdx  int
	categories []CategoryRow
	txns       []models.Transaction
	trend      []TrendRow
	filters    []Filters
}

func (s *stubLedger) SumIncomeAndExpense(_ uint, f Filters) (FlowTotals, error) {
	s.filters = append(s.filters, f)
	if s.totalsIdx < len(s.totals) {
		t := s.totals[s.totalsIdx]
		s.totalsIdx++
		return t, nil
	}
	return FlowTotals{}, nil
}

func (s *stubLedger) SumByCategory(_ uint, f Filters) ([]CategoryRow, error) {
	s.filters = append(s.filters, f)
	return s.categories, nil
}

func (s *stubLedger) TransactionsByDateRange(_ uint, f Filters) ([]models.Transaction, error) {
	return s.txns, nil
}

func (s *stubLedger) TrendByPeriod(_ uint, _ Granularity, _ int) ([]TrendRow, error) {
	return s.trend, nil
}

type stubWallets struct {
	wallets  map[uint]*models.Wallet
	initial  float64
	overview []WalletOverviewRow
}

func (s *stubWallets) WalletByID(_ uint, walletID uint) (*models.Wallet, error) {
	w, ok := s.wallets[walletID]
	if !ok {
		return nil, ErrWalletNotFound
	}
	return w, nil
}

func (s *stubWallets) TotalInitialBalance(_ uint, walletID *uint) (float64, error) {
	if walletID != nil {
		w, err := s.WalletByID(0, *walletID)
		if err != nil {
			return 0, err
		}
		return w.InitialBalance, nil
	}
	return s.initial, nil
}

func (s *stubWallets) Overview(_ uint) ([]WalletOverviewRow, error) {
	return s.overview, nil
}

func TestOverallSummary(t *testing.T) {
	// Two wallets with initial balances 100 and 50; one income of 200 and
	// one expense of 30 across the ledger.
	svc := newServiceWith(
		&stubLedger{totals: []FlowTotals{{Income: 200, Expense: 30}}},
		&stubWallets{initial: 150},
	)

	summary, err := svc.OverallSummary(1)
	require.NoError(t, err)

	assert.Equal(t, OverallSummary{
		TotalIncome:       200,
		TotalExpense:      30,
		InitialBalance:    150,
		CurrentNetBalance: 320,
	}, summary)
}

func TestOverallSummary_EmptyLedger(t *testing.T) {
	svc := newServiceWith(&stubLedger{}, &stubWallets{})

	summary, err := svc.OverallSummary(1)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.TotalExpense)
	assert.Zero(t, summary.CurrentNetBalance)
}

func TestWalletSummary(t *testing.T) {
	ledger := &stubLedger{
		totals: []FlowTotals{{Income: 50, Expense: 20}},
		txns:   []models.Transaction{{ID: 1}, {ID: 2}},
	}
	svc := newServiceWith(ledger, &stubWallets{
		wallets: map[uint]*models.Wallet{7: {ID: 7, InitialBalance: 100}},
	})

	summary, err := svc.WalletSummary(1, 7)
	require.NoError(t, err)

	assert.Equal(t, uint(7), summary.WalletID)
	assert.Equal(t, 130.0, summary.CurrentBalance)
	assert.Len(t, summary.Transactions, 2)

	// The ledger query must have been scoped to the wallet, with no date
	// bounds: balances net the entire history.
	require.NotEmpty(t, ledger.filters)
	require.NotNil(t, ledger.filters[0].WalletID)
	assert.Equal(t, uint(7), *ledger.filters[0].WalletID)
	assert.Nil(t, ledger.filters[0].StartDate)
	assert.Nil(t, ledger.filters[0].EndDate)
}

func TestWalletSummary_NotFound(t *testing.T) {
	svc := newServiceWith(&stubLedger{}, &stubWallets{})

	_, err := svc.WalletSummary(1, 99)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestWalletsOverview(t *testing.T) {
	svc := newServiceWith(&stubLedger{}, &stubWallets{
		overview: []WalletOverviewRow{
			{WalletID: 1, WalletName: "Cash", InitialBalance: 100, Income: 200, Expense: 30},
			{WalletID: 2, WalletName: "Bank", InitialBalance: 50},
		},
	})

	overview, err := svc.WalletsOverview(1)
	require.NoError(t, err)
	require.Len(t, overview, 2)

	assert.Equal(t, 270.0, overview[0].CurrentBalance)
	assert.Equal(t, 50.0, overview[1].CurrentBalance, "a wallet with no transactions keeps its initial balance")
}

func TestPeriodAnalytics_PassesRangeToLedger(t *testing.T) {
	ledger := &stubLedger{totals: []FlowTotals{{Income: 10, Expense: 3}}}
	svc := newServiceWith(ledger, &stubWallets{})

	r := DateRange{Start: date(2025, 6, 1), End: date(2025, 7, 1)}
	period, err := svc.PeriodAnalytics(1, nil, r)
	require.NoError(t, err)

	assert.Equal(t, 7.0, period.NetProfit)
	require.NotEmpty(t, ledger.filters)
	assert.Equal(t, r.Start, *ledger.filters[0].StartDate)
	assert.Equal(t, r.End, *ledger.filters[0].EndDate)
}

func TestTrend_ZeroFillsMissingBuckets(t *testing.T) {
	currentBucket := bucketStart(Daily, time.Now())
	ledger := &stubLedger{trend: []TrendRow{
		{Bucket: addBuckets(currentBucket, Daily, -3), Income: 40, Expense: 10},
		{Bucket: currentBucket, Income: 5, Expense: 0},
	}}
	svc := newServiceWith(ledger, &stubWallets{})

	points, err := svc.Trend(1, Daily, 7)
	require.NoError(t, err)
	require.Len(t, points, 7, "a 7-bucket request always yields 7 points")

	assert.Equal(t, 30.0, points[3].NetProfit)
	assert.Equal(t, 5.0, points[6].Income)
	for i, p := range points {
		if i != 3 && i != 6 {
			assert.Zero(t, p.Income, "bucket %d should be zero-filled", i)
			assert.Zero(t, p.Expense, "bucket %d should be zero-filled", i)
		}
	}

	// Labels ascend one day at a time.
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1].Period, points[i].Period)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	catID := uuid.New()
	svc := newServiceWith(&stubLedger{categories: []CategoryRow{
		{CategoryID: catID, CategoryName: "Food", CategoryType: models.CategoryTypeExpense, TransactionType: models.TypeExpense, Total: 80, Count: 4},
	}}, &stubWallets{})

	breakdown, err := svc.CategoryBreakdown(1, nil, ThisMonth())
	require.NoError(t, err)
	require.Len(t, breakdown, 1)

	assert.Equal(t, catID, breakdown[0].CategoryID)
	assert.Equal(t, 80.0, breakdown[0].Total)
	assert.Equal(t, int64(4), breakdown[0].Count)
}

func TestHighestSpendingCategory(t *testing.T) {
	svc := newServiceWith(&stubLedger{categories: []CategoryRow{
		{CategoryName: "Salary", TransactionType: models.TypeIncome, Total: 5000},
		{CategoryName: "Rent", TransactionType: models.TypeExpense, Total: 1200},
		{CategoryName: "Food", TransactionType: models.TypeExpense, Total: 300},
	}}, &stubWallets{})

	top, err := svc.HighestSpendingCategory(1, nil, ThisMonth())
	require.NoError(t, err)

	assert.Equal(t, "Rent", top.CategoryName, "income rows are skipped even when larger")
}

func TestHighestSpendingCategory_NoExpenses(t *testing.T) {
	svc := newServiceWith(&stubLedger{categories: []CategoryRow{
		{CategoryName: "Salary", TransactionType: models.TypeIncome, Total: 5000},
	}}, &stubWallets{})

	_, err := svc.HighestSpendingCategory(1, nil, ThisMonth())
	assert.ErrorIs(t, err, ErrNoSpendingData)
}

func TestCompare(t *testing.T) {
	// Current period first, previous second.
	ledger := &stubLedger{totals: []FlowTotals{
		{Income: 100, Expense: 80},
		{Income: 50, Expense: 100},
	}}
	svc := newServiceWith(ledger, &stubWallets{})

	compared, err := svc.Compare(1, nil,
		Custom(date(2025, 6, 1), date(2025, 7, 1)),
		Custom(date(2025, 5, 1), date(2025, 6, 1)),
	)
	require.NoError(t, err)

	assert.Equal(t, 100.0, compared.CurrentIncome)
	assert.Equal(t, 50.0, compared.PreviousIncome)
	assert.Equal(t, 50.0, compared.IncomeChange)
	assert.Equal(t, 100.0, compared.IncomeChangePercent)
	assert.Equal(t, -20.0, compared.ExpenseChange)
	assert.Equal(t, -20.0, compared.ExpenseChangePercent)
}

func TestViewsAreIdempotent(t *testing.T) {
	build := func() *Service {
		return newServiceWith(
			&stubLedger{totals: []FlowTotals{{Income: 200, Expense: 30}, {Income: 200, Expense: 30}}},
			&stubWallets{initial: 150},
		)
	}

	first, err := build().OverallSummary(1)
	require.NoError(t, err)
	second, err := build().OverallSummary(1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
