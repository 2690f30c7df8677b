package analytics

import "time"

// DateRange is a half-open UTC interval [Start, End). A zero Start or End
// means that side of the range is unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bounded reports whether both endpoints are set.
func (r DateRange) Bounded() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Contains reports whether t falls inside the range, honoring the half-open
// contract: Start is included, End is excluded.
func (r DateRange) Contains(t time.Time) bool {
	t = t.UTC()
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End) {
		return false
	}
	return true
}

// Today returns [midnight UTC today, midnight UTC tomorrow).
func Today() DateRange {
	return todayFrom(time.Now())
}

// ThisWeek returns the current week, starting Sunday 00:00 UTC.
func ThisWeek() DateRange {
	return thisWeekFrom(time.Now())
}

// ThisMonth returns [first of the current UTC month, first of the next).
func ThisMonth() DateRange {
	return thisMonthFrom(time.Now())
}

// Custom normalizes both endpoints to UTC midnight of their calendar date,
// dropping any time-of-day the caller supplied. The returned End is still an
// exclusive bound when used in queries.
func Custom(start, end time.Time) DateRange {
	return DateRange{Start: truncateToDay(start), End: truncateToDay(end)}
}

// NormalizeDates builds a range from optional endpoints:
// both set -> Custom; only start -> open-ended from that day; only end ->
// range through the end of that day (end-date inclusive); neither -> the
// current month.
func NormalizeDates(startDate, endDate *time.Time) DateRange {
	switch {
	case startDate != nil && endDate != nil:
		return Custom(*startDate, *endDate)
	case startDate != nil:
		return DateRange{Start: truncateToDay(*startDate)}
	case endDate != nil:
		return DateRange{End: truncateToDay(*endDate).AddDate(0, 0, 1)}
	default:
		return ThisMonth()
	}
}

// FromPreset resolves a named period. Unknown names fall back to the month.
func FromPreset(name string) DateRange {
	switch name {
	case "daily", "today":
		return Today()
	case "weekly", "week":
		return ThisWeek()
	case "monthly", "month":
		return ThisMonth()
	default:
		return ThisMonth()
	}
}

func todayFrom(now time.Time) DateRange {
	start := truncateToDay(now)
	return DateRange{Start: start, End: start.AddDate(0, 0, 1)}
}

func thisWeekFrom(now time.Time) DateRange {
	day := truncateToDay(now)
	// time.Weekday numbers Sunday as 0, which is also the week start here.
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return DateRange{Start: start, End: start.AddDate(0, 0, 7)}
}

func thisMonthFrom(now time.Time) DateRange {
	t := now.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, 0)}
}

// truncateToDay maps any instant to UTC midnight of its calendar date. All
// date math in this package goes through here so client-timezone values never
// leak into comparisons.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bucketStart truncates t to the start of its trend bucket. Weekly buckets
// follow Postgres DATE_TRUNC('week') and start on Monday; the ThisWeek preset
// keeps its Sunday start independently.
func bucketStart(g Granularity, t time.Time) time.Time {
	day := truncateToDay(t)
	switch g {
	case Weekly:
		return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	case Monthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// addBuckets moves a bucket start by n buckets (n may be negative).
func addBuckets(start time.Time, g Granularity, n int) time.Time {
	switch g {
	case Weekly:
		return start.AddDate(0, 0, 7*n)
	case Monthly:
		return start.AddDate(0, n, 0)
	default:
		return start.AddDate(0, 0, n)
	}
}
