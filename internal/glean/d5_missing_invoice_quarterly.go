package glean

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HMB-research/invoice-gleans/internal/aggregate"
	"github.com/HMB-research/invoice-gleans/internal/calendar"
	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// missingInvoiceQuarterly is D5: the quarterly analogue of
// missingInvoiceMonthly. For vendors that billed in each of the
// trailing thresholds.QuarterlyStreakWindow quarters, flag every day
// past the vendor's usual invoice day-of-quarter for which that
// quarter's invoice has not yet arrived.
func missingInvoiceQuarterly(invoices []ledger.Invoice, t Thresholds) []ledger.Glean {
	dated := filterDated(invoices)
	if len(dated) == 0 {
		return nil
	}

	minDate, maxDate := dateBounds(dated)
	rangeStart := calendar.MonthStart(minDate)
	rangeEnd := calendar.MonthStart(maxDate).AddDate(0, 1, 0)
	quarters := calendar.DateRange(rangeStart, rangeEnd, calendar.StepQuarterStart)
	days := calendar.DateRange(rangeStart, rangeEnd, calendar.StepDay)
	vendors := vendorIDs(dated)

	usualDayByVendor := mostFrequentDayOfQuarter(dated, vendors)

	var out []ledger.Glean
	for _, vendorID := range vendors {
		firstInvoiceByQuarter := firstInvoiceDateByPeriod(dated, vendorID, calendar.QuarterStart)

		series := make([]decimal.Decimal, len(quarters))
		quarterIndex := make(map[time.Time]int, len(quarters))
		for i, q := range quarters {
			quarterIndex[q] = i
			if _, ok := firstInvoiceByQuarter[q]; ok {
				series[i] = decimal.NewFromInt(1)
			}
		}
		means := aggregate.RollingMean(series, t.QuarterlyStreakWindow)
		usualDay := usualDayByVendor[vendorID]

		for _, day := range days {
			q := calendar.QuarterStart(day)
			idx, ok := quarterIndex[q]
			if !ok {
				continue
			}
			if !fullStreak(means, idx) {
				continue
			}
			if calendar.DayOfQuarter(day) <= usualDay {
				continue
			}
			if invoiceDate, invoiced := firstInvoiceByQuarter[q]; invoiced && calendar.DayOfQuarter(invoiceDate) <= calendar.DayOfQuarter(day) {
				continue
			}

			out = append(out, ledger.Glean{
				GleanDate: day,
				GleanText: fmt.Sprintf(
					"%s generally charges between on %d day of each quarter invoices are sent. On %s, an invoice from %s has not been received",
					vendorID, usualDay, day.Format(dateLayout), vendorID),
				GleanType:         ledger.TypeMissingInvoice,
				GleanLocation:     ledger.LocationVendor,
				InvoiceID:         nil,
				CanonicalVendorID: vendorID,
			})
		}
	}
	return out
}

// mostFrequentDayOfQuarter returns, for each vendor, the modal
// day-of-quarter across all its dated invoices.
func mostFrequentDayOfQuarter(invoices []ledger.Invoice, vendors []string) map[string]int {
	byVendor := make(map[string][]int)
	for _, inv := range invoices {
		byVendor[inv.CanonicalVendorID] = append(byVendor[inv.CanonicalVendorID], calendar.DayOfQuarter(*inv.InvoiceDate))
	}
	out := make(map[string]int, len(vendors))
	for _, vendorID := range vendors {
		out[vendorID] = aggregate.Mode(byVendor[vendorID])
	}
	return out
}
