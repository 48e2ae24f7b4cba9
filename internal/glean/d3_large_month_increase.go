package glean

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/HMB-research/invoice-gleans/internal/aggregate"
	"github.com/HMB-research/invoice-gleans/internal/calendar"
	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// largeMonthIncrease is D3: build a monthly (vendor, month) grid
// spanning the full input date range, sum total_amount per cell, and
// compare each month's total against the trailing
// thresholds.MonthlyRollingWindow-month mean (including the current
// month). A month fires if its total clears the band threshold for its
// size — see bandFires for the exact predicate — and is at least
// thresholds.LargeIncreaseMinAmount. Months in a vendor's first
// (window-1) periods have no defined mean and never fire.
func largeMonthIncrease(invoices []ledger.Invoice, t Thresholds) []ledger.Glean {
	dated := filterDated(invoices)
	if len(dated) == 0 {
		return nil
	}

	minDate, maxDate := dateBounds(dated)
	periods := calendar.DateRange(minDate, calendar.MonthStart(maxDate).AddDate(0, 1, 0), calendar.StepMonthStart)
	vendors := vendorIDs(dated)

	rows := make([]aggregate.VendorPeriodAmount, 0, len(dated))
	for _, inv := range dated {
		rows = append(rows, aggregate.VendorPeriodAmount{
			VendorID: inv.CanonicalVendorID,
			Period:   calendar.MonthStart(*inv.InvoiceDate),
			Amount:   inv.TotalAmount,
		})
	}
	sums := aggregate.SumByVendorPeriod(rows)

	var out []ledger.Glean
	for _, vendorID := range vendors {
		series := make([]decimal.Decimal, len(periods))
		for i, p := range periods {
			series[i] = sums[aggregate.VendorPeriod{VendorID: vendorID, Period: p}]
		}
		means := aggregate.RollingMean(series, t.MonthlyRollingWindow)

		for i, p := range periods {
			if !means[i].Valid {
				continue
			}
			x := series[i]
			mu := means[i].Value
			if mu.IsZero() || !bandFires(x, mu, t) {
				continue
			}

			pct := roundHalfAwayFromZero(x.Div(mu).Mul(decimalHundred), 2)
			out = append(out, ledger.Glean{
				GleanDate: p,
				GleanText: fmt.Sprintf("Monthly spend with %s is $%s (%s%%) higher than average.",
					vendorID, formatAmount(x), formatAmount(pct)),
				GleanType:         ledger.TypeLargeMonthIncrease,
				GleanLocation:     ledger.LocationVendor,
				InvoiceID:         nil,
				CanonicalVendorID: vendorID,
			})
		}
	}
	return out
}

// bandFires applies the three spend bands a month's total is judged
// against. Amounts
// below thresholds.LargeIncreaseMinAmount never fire, and amounts
// exactly equal to a band boundary fall in no band.
func bandFires(x, mu decimal.Decimal, t Thresholds) bool {
	if x.LessThan(t.LargeIncreaseMinAmount) {
		return false
	}
	high := x.GreaterThan(t.LargeIncreaseHighBand) && x.GreaterThan(mu.Mul(t.LargeIncreaseHighMultiplier))
	mid := x.LessThan(t.LargeIncreaseHighBand) && x.GreaterThan(t.LargeIncreaseMidBand) && x.GreaterThan(mu.Mul(t.LargeIncreaseMidMultiplier))
	low := x.LessThan(t.LargeIncreaseMidBand) && x.GreaterThan(mu.Mul(t.LargeIncreaseLowMultiplier))
	return high || mid || low
}
