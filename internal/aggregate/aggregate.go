// Package aggregate provides the group-by-vendor reductions the glean
// detectors are built from: the vendor-period cross product used as
// the left side of a densifying join, and the sum/rolling-mean/mode/
// diff/max reductions that turn sparse per-invoice rows into dense
// per-vendor time series.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// VendorPeriod is one cell of a vendor × period grid.
type VendorPeriod struct {
	VendorID string
	Period   time.Time
}

// Densify produces the cross product of vendors and periods: one
// VendorPeriod per (vendor, period) pair, ordered by vendor (in the
// order given) then period ascending. Callers that depend on a
// different ordering must re-sort.
func Densify(vendors []string, periods []time.Time) []VendorPeriod {
	grid := make([]VendorPeriod, 0, len(vendors)*len(periods))
	for _, v := range vendors {
		for _, p := range periods {
			grid = append(grid, VendorPeriod{VendorID: v, Period: p})
		}
	}
	return grid
}

// VendorPeriodAmount is a single (vendor, period, amount) observation,
// the input to SumByVendorPeriod.
type VendorPeriodAmount struct {
	VendorID string
	Period   time.Time
	Amount   decimal.Decimal
}

// SumByVendorPeriod groups rows by (vendor, period) and sums Amount.
// A (vendor, period) pair absent from rows is absent from the result;
// callers fill zero after densifying onto a grid.
func SumByVendorPeriod(rows []VendorPeriodAmount) map[VendorPeriod]decimal.Decimal {
	sums := make(map[VendorPeriod]decimal.Decimal)
	for _, r := range rows {
		key := VendorPeriod{VendorID: r.VendorID, Period: r.Period}
		sums[key] = sums[key].Add(r.Amount)
	}
	return sums
}

// OptionalDecimal is a decimal value that may be undefined, the way a
// rolling mean is undefined before its window has filled.
type OptionalDecimal struct {
	Value decimal.Decimal
	Valid bool
}

// RollingMean computes, for each position i in series, the mean of
// series[i-window+1 : i+1]. The result is invalid (undefined) for the
// first window-1 positions. series must already be ordered the way the
// caller wants the window to walk (ascending period, within one
// vendor).
func RollingMean(series []decimal.Decimal, window int) []OptionalDecimal {
	out := make([]OptionalDecimal, len(series))
	if window <= 0 {
		return out
	}
	for i := range series {
		if i < window-1 {
			continue
		}
		sum := decimal.Zero
		for j := i - window + 1; j <= i; j++ {
			sum = sum.Add(series[j])
		}
		out[i] = OptionalDecimal{
			Value: sum.Div(decimal.NewFromInt(int64(window))),
			Valid: true,
		}
	}
	return out
}

// Mode returns the most frequent value in values. Ties are broken in
// favor of the value that occurred first among those tied for the
// highest count. An empty input yields 0.
func Mode(values []int) int {
	if len(values) == 0 {
		return 0
	}
	counts := make(map[int]int, len(values))
	firstSeen := make(map[int]int, len(values))
	for i, v := range values {
		counts[v]++
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
	}

	best, bestCount, bestFirst := 0, -1, 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && firstSeen[v] < bestFirst) {
			best, bestCount, bestFirst = v, c, firstSeen[v]
		}
	}
	return best
}

// Diff returns, for dates sorted ascending, the gap in days between
// each date and its predecessor within the slice. The first element's
// gap is the sentinel -1 (no predecessor). dates must already be
// sorted ascending; Diff does not sort.
func Diff(dates []time.Time) []int {
	out := make([]int, len(dates))
	for i, d := range dates {
		if i == 0 {
			out[i] = -1
			continue
		}
		out[i] = int(d.Sub(dates[i-1]).Hours() / 24)
	}
	return out
}

// SortTimes sorts dates ascending in place and returns it for chaining.
func SortTimes(dates []time.Time) []time.Time {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// MaxTime returns the latest non-nil time among times, or nil if all
// are nil.
func MaxTime(times ...*time.Time) *time.Time {
	var max *time.Time
	for _, t := range times {
		if t == nil {
			continue
		}
		if max == nil || t.After(*max) {
			max = t
		}
	}
	return max
}
