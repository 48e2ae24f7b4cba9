// Package calendar provides the date truncation and range-generation
// primitives the glean detectors build their per-vendor time series on.
// All dates are treated as calendar dates: callers are expected to pass
// in times already normalized to midnight UTC, and every function here
// preserves that normalization.
package calendar

import "time"

// Step selects the alignment used by DateRange.
type Step int

const (
	// StepDay produces one date per calendar day.
	StepDay Step = iota
	// StepMonthStart produces one date per calendar month, on the 1st.
	StepMonthStart
	// StepQuarterStart produces one date per calendar quarter, on the
	// first day of January, April, July, or October.
	StepQuarterStart
)

// Normalize strips any time-of-day and location component, returning a
// pure calendar date in UTC.
func Normalize(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart truncates d to the first day of its month.
func MonthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// QuarterStart truncates d to the first day of its calendar quarter.
func QuarterStart(d time.Time) time.Time {
	q := (int(d.Month()) - 1) / 3
	return time.Date(d.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
}

// DayOfMonth returns d's 1-based day number within its month.
func DayOfMonth(d time.Time) int {
	return d.Day()
}

// DayOfQuarter returns d's 1-based offset in days from its quarter start.
func DayOfQuarter(d time.Time) int {
	return int(d.Sub(QuarterStart(d)).Hours()/24) + 1
}

// DateRange produces the strictly ascending sequence of dates in
// [start, end] aligned to step. start and end are normalized to the
// step's alignment first, so the range always begins and ends on an
// aligned boundary.
func DateRange(start, end time.Time, step Step) []time.Time {
	var first, last time.Time
	var advance func(time.Time) time.Time

	switch step {
	case StepMonthStart:
		first, last = MonthStart(start), MonthStart(end)
		advance = func(d time.Time) time.Time { return d.AddDate(0, 1, 0) }
	case StepQuarterStart:
		first, last = QuarterStart(start), QuarterStart(end)
		advance = func(d time.Time) time.Time { return d.AddDate(0, 3, 0) }
	default:
		first, last = Normalize(start), Normalize(end)
		advance = func(d time.Time) time.Time { return d.AddDate(0, 0, 1) }
	}

	if last.Before(first) {
		return nil
	}

	dates := make([]time.Time, 0)
	for d := first; !d.After(last); d = advance(d) {
		dates = append(dates, d)
	}
	return dates
}
