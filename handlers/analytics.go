package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"finance-tracker-go-be/analytics"
)

var analyticsSvc *analytics.Service

// InitAnalytics wires the analytics service. Called once from main after the
// database connection is up.
func InitAnalytics(svc *analytics.Service) {
	analyticsSvc = svc
}

// OverallSummary returns the user's all-time totals and net balance.
func OverallSummary(c *fiber.Ctx) error {
	summary, err := analyticsSvc.OverallSummary(currentUserID(c))
	if err != nil {
		log.Printf("Failed to compute overall summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}
	return c.JSON(summary)
}

// WalletSummary returns one wallet's totals, balance, and transactions.
func WalletSummary(c *fiber.Ctx) error {
	walletID, err := parseUintParam(c, "walletId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}

	summary, err := analyticsSvc.WalletSummary(currentUserID(c), walletID)
	if errors.Is(err, analytics.ErrWalletNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wallet not found"})
	}
	if err != nil {
		log.Printf("Failed to compute wallet summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}
	return c.JSON(summary)
}

// WalletsOverview returns one computed row per wallet.
func WalletsOverview(c *fiber.Ctx) error {
	overview, err := analyticsSvc.WalletsOverview(currentUserID(c))
	if err != nil {
		log.Printf("Failed to compute wallets overview: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute overview"})
	}
	return c.JSON(overview)
}

// PeriodAnalytics returns the flow view for a preset or custom range.
// Precedence: an explicit preset wins, then start/end, then the current month.
func PeriodAnalytics(c *fiber.Ctx) error {
	walletID, err := walletIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}

	var dateRange analytics.DateRange
	if preset := c.Query("preset"); preset != "" {
		dateRange = analytics.FromPreset(preset)
	} else {
		start, end, err := dateRangeFromQuery(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		dateRange = analytics.NormalizeDates(start, end)
	}

	period, err := analyticsSvc.PeriodAnalytics(currentUserID(c), walletID, dateRange)
	if err != nil {
		log.Printf("Failed to compute period analytics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute analytics"})
	}
	return c.JSON(period)
}

// TrendAnalytics returns the trailing N-bucket series.
func TrendAnalytics(c *fiber.Ctx) error {
	granularity := analytics.Granularity(c.Query("granularity", string(analytics.Monthly)))
	if !granularity.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Granularity must be daily, weekly, or monthly"})
	}
	window, err := strconv.Atoi(c.Query("window", "6"))
	if err != nil || window < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Window must be a positive integer"})
	}

	points, err := analyticsSvc.Trend(currentUserID(c), granularity, window)
	if err != nil {
		log.Printf("Failed to compute trend: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute trend"})
	}
	return c.JSON(points)
}

// CategoryBreakdown returns per-category totals within the range.
func CategoryBreakdown(c *fiber.Ctx) error {
	walletID, err := walletIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}
	start, end, err := dateRangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	breakdown, err := analyticsSvc.CategoryBreakdown(currentUserID(c), walletID, analytics.NormalizeDates(start, end))
	if err != nil {
		log.Printf("Failed to compute category breakdown: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute breakdown"})
	}
	return c.JSON(breakdown)
}

// TopSpendingCategory returns the expense category with the largest total in
// the range, 404 when there is no spending at all.
func TopSpendingCategory(c *fiber.Ctx) error {
	walletID, err := walletIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}
	start, end, err := dateRangeFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	top, err := analyticsSvc.HighestSpendingCategory(currentUserID(c), walletID, analytics.NormalizeDates(start, end))
	if errors.Is(err, analytics.ErrNoSpendingData) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No spending data for period"})
	}
	if err != nil {
		log.Printf("Failed to compute top category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute breakdown"})
	}
	return c.JSON(top)
}

// ComparePeriodsRequest carries the two ranges to compare. Dates are
// calendar days; each end is treated as inclusive.
type ComparePeriodsRequest struct {
	Current  PeriodRange `json:"current"`
	Previous PeriodRange `json:"previous"`
}

// PeriodRange is one {start, end} pair in a compare request.
type PeriodRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ComparePeriods computes period analytics for two ranges and their deltas.
func ComparePeriods(c *fiber.Ctx) error {
	walletID, err := walletIDFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid wallet ID"})
	}

	var req ComparePeriodsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	current, err := req.Current.resolve()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid current period: " + err.Error()})
	}
	previous, err := req.Previous.resolve()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid previous period: " + err.Error()})
	}

	compared, err := analyticsSvc.Compare(currentUserID(c), walletID, current, previous)
	if err != nil {
		log.Printf("Failed to compare periods: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compare periods"})
	}
	return c.JSON(compared)
}

func (p PeriodRange) resolve() (analytics.DateRange, error) {
	if p.Start == "" || p.End == "" {
		return analytics.DateRange{}, errors.New("start and end are required")
	}
	start, err := parseDate(p.Start)
	if err != nil {
		return analytics.DateRange{}, err
	}
	end, err := parseDate(p.End)
	if err != nil {
		return analytics.DateRange{}, err
	}
	// End-date inclusive: push the exclusive bound to the next day.
	return analytics.Custom(start, end.AddDate(0, 0, 1)), nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

func walletIDFromQuery(c *fiber.Ctx) (*uint, error) {
	raw := c.Query("walletId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	walletID := uint(id)
	return &walletID, nil
}

func dateRangeFromQuery(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if raw := c.Query("start"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

// filtersFromQuery builds listing filters. Unlike the analytics views, a
// listing with no date parameters means "everything", not the current month.
func filtersFromQuery(c *fiber.Ctx) (analytics.Filters, error) {
	walletID, err := walletIDFromQuery(c)
	if err != nil {
		return analytics.Filters{}, errors.New("Invalid wallet ID")
	}
	start, end, err := dateRangeFromQuery(c)
	if err != nil {
		return analytics.Filters{}, err
	}
	if start == nil && end == nil {
		return analytics.Filters{WalletID: walletID}, nil
	}
	return analytics.FiltersForRange(walletID, analytics.NormalizeDates(start, end)), nil
}
