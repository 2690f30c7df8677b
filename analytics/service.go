package analytics

import (
	"time"

	"gorm.io/gorm"

	"finance-tracker-go-be/models"
)

// Service composes range resolution, ledger queries, and the balance formula
// into the analytics views. It is stateless: every call is a pure read keyed
// by the user id threaded through it.
type Service struct {
	ledger  Ledger
	wallets WalletStore
}

// NewService builds a Service on the GORM-backed repository.
func NewService(db *gorm.DB) *Service {
	repo := NewRepository(db)
	return &Service{ledger: repo, wallets: repo}
}

// newServiceWith wires explicit collaborators, used by tests.
func newServiceWith(ledger Ledger, wallets WalletStore) *Service {
	return &Service{ledger: ledger, wallets: wallets}
}

// OverallSummary reports the all-time totals and net balance across every
// wallet the user owns.
func (s *Service) OverallSummary(userID uint) (OverallSummary, error) {
	totals, err := s.ledger.SumIncomeAndExpense(userID, Filters{})
	if err != nil {
		return OverallSummary{}, err
	}
	initial, err := s.wallets.TotalInitialBalance(userID, nil)
	if err != nil {
		return OverallSummary{}, err
	}
	return toOverallSummary(totals, initial), nil
}

// WalletSummary reports one wallet's all-time totals, current balance, and
// chronological transaction list. The balance always nets the wallet's entire
// history against its initial balance.
func (s *Service) WalletSummary(userID, walletID uint) (WalletSummary, error) {
	wallet, err := s.wallets.WalletByID(userID, walletID)
	if err != nil {
		return WalletSummary{}, err
	}
	f := Filters{WalletID: &walletID}
	totals, err := s.ledger.SumIncomeAndExpense(userID, f)
	if err != nil {
		return WalletSummary{}, err
	}
	txns, err := s.ledger.TransactionsByDateRange(userID, f)
	if err != nil {
		return WalletSummary{}, err
	}
	return toWalletSummary(wallet.ID, totals, wallet.InitialBalance, txns), nil
}

// WalletsOverview returns one row per wallet, computed by a single grouped
// query rather than a call per wallet.
func (s *Service) WalletsOverview(userID uint) ([]WalletOverview, error) {
	rows, err := s.wallets.Overview(userID)
	if err != nil {
		return nil, err
	}
	overview := make([]WalletOverview, 0, len(rows))
	for _, row := range rows {
		overview = append(overview, toWalletOverview(row))
	}
	return overview, nil
}

// PeriodAnalytics reports the flow totals and transactions inside a resolved
// range. Initial balances are not involved; periods measure movement.
func (s *Service) PeriodAnalytics(userID uint, walletID *uint, r DateRange) (PeriodAnalytics, error) {
	f := FiltersForRange(walletID, r)
	totals, err := s.ledger.SumIncomeAndExpense(userID, f)
	if err != nil {
		return PeriodAnalytics{}, err
	}
	txns, err := s.ledger.TransactionsByDateRange(userID, f)
	if err != nil {
		return PeriodAnalytics{}, err
	}
	return toPeriodAnalytics(r, totals, txns), nil
}

// Trend returns exactly `window` buckets ending at the current one. Buckets
// with no activity are zero-filled so the series length is predictable.
func (s *Service) Trend(userID uint, g Granularity, window int) ([]TrendPoint, error) {
	rows, err := s.ledger.TrendByPeriod(userID, g, window)
	if err != nil {
		return nil, err
	}

	byBucket := make(map[time.Time]TrendRow, len(rows))
	for _, row := range rows {
		byBucket[bucketStart(g, row.Bucket)] = row
	}

	end := bucketStart(g, time.Now())
	points := make([]TrendPoint, 0, window)
	for i := window - 1; i >= 0; i-- {
		bucket := addBuckets(end, g, -i)
		row := byBucket[bucket]
		points = append(points, toTrendPoint(g, bucket, row.Income, row.Expense))
	}
	return points, nil
}

// CategoryBreakdown returns per-category totals and counts within the range,
// ordered by total descending. Uncategorized transactions are excluded.
func (s *Service) CategoryBreakdown(userID uint, walletID *uint, r DateRange) ([]CategoryBreakdown, error) {
	rows, err := s.ledger.SumByCategory(userID, FiltersForRange(walletID, r))
	if err != nil {
		return nil, err
	}
	breakdown := make([]CategoryBreakdown, 0, len(rows))
	for _, row := range rows {
		breakdown = append(breakdown, toCategoryBreakdown(row))
	}
	return breakdown, nil
}

// HighestSpendingCategory returns the expense category with the largest total
// in the range, or ErrNoSpendingData when nothing was spent.
func (s *Service) HighestSpendingCategory(userID uint, walletID *uint, r DateRange) (CategoryBreakdown, error) {
	rows, err := s.ledger.SumByCategory(userID, FiltersForRange(walletID, r))
	if err != nil {
		return CategoryBreakdown{}, err
	}
	// Rows arrive ordered by total descending, so the first expense row wins.
	for _, row := range rows {
		if row.TransactionType == models.TypeExpense {
			return toCategoryBreakdown(row), nil
		}
	}
	return CategoryBreakdown{}, ErrNoSpendingData
}

// Compare computes period analytics for two ranges and their deltas.
func (s *Service) Compare(userID uint, walletID *uint, current, previous DateRange) (ComparePeriods, error) {
	currentData, err := s.PeriodAnalytics(userID, walletID, current)
	if err != nil {
		return ComparePeriods{}, err
	}
	previousData, err := s.PeriodAnalytics(userID, walletID, previous)
	if err != nil {
		return ComparePeriods{}, err
	}
	return toComparePeriods(currentData, previousData), nil
}
