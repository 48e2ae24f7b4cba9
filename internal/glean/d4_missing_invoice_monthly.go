package glean

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HMB-research/invoice-gleans/internal/aggregate"
	"github.com/HMB-research/invoice-gleans/internal/calendar"
	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// missingInvoiceMonthly is D4: for vendors that billed in each of the
// trailing thresholds.MonthlyStreakWindow months, flag every day past
// the vendor's usual invoice day of the month for which that month's
// invoice has not yet arrived. A vendor without a full trailing streak,
// or whose invoice has already arrived on or before the usual day,
// never fires. When the invoice does eventually arrive mid-month, the
// glean stops firing on the day it arrives.
func missingInvoiceMonthly(invoices []ledger.Invoice, t Thresholds) []ledger.Glean {
	dated := filterDated(invoices)
	if len(dated) == 0 {
		return nil
	}

	minDate, maxDate := dateBounds(dated)
	rangeStart := calendar.MonthStart(minDate)
	rangeEnd := calendar.MonthStart(maxDate).AddDate(0, 1, 0)
	months := calendar.DateRange(rangeStart, rangeEnd, calendar.StepMonthStart)
	days := calendar.DateRange(rangeStart, rangeEnd, calendar.StepDay)
	vendors := vendorIDs(dated)

	usualDayByVendor := mostFrequentDayOfMonth(dated, vendors)

	var out []ledger.Glean
	for _, vendorID := range vendors {
		firstInvoiceByMonth := firstInvoiceDateByPeriod(dated, vendorID, calendar.MonthStart)

		series := make([]decimal.Decimal, len(months))
		monthIndex := make(map[time.Time]int, len(months))
		for i, m := range months {
			monthIndex[m] = i
			if _, ok := firstInvoiceByMonth[m]; ok {
				series[i] = decimal.NewFromInt(1)
			}
		}
		means := aggregate.RollingMean(series, t.MonthlyStreakWindow)
		usualDay := usualDayByVendor[vendorID]

		for _, day := range days {
			m := calendar.MonthStart(day)
			idx, ok := monthIndex[m]
			if !ok {
				continue
			}
			if !fullStreak(means, idx) {
				continue
			}
			if calendar.DayOfMonth(day) <= usualDay {
				continue
			}
			if invoiceDate, invoiced := firstInvoiceByMonth[m]; invoiced && calendar.DayOfMonth(invoiceDate) <= calendar.DayOfMonth(day) {
				continue
			}

			out = append(out, ledger.Glean{
				GleanDate: day,
				GleanText: fmt.Sprintf(
					"%s generally charges between on %d day of each month invoices are sent. On %s, an invoice from %s has not been received",
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

// fullStreak reports whether the rolling mean ending the period just
// before idx was exactly 1 - every period in the trailing window had an
// invoice. The shift by one period matches the reference rule: a
// period's streak flag describes the periods leading up to it, not
// itself.
func fullStreak(means []aggregate.OptionalDecimal, idx int) bool {
	if idx < 1 {
		return false
	}
	prev := means[idx-1]
	return prev.Valid && prev.Value.Equal(decimal.NewFromInt(1))
}

// mostFrequentDayOfMonth returns, for each vendor, the modal day-of-month
// across all its dated invoices.
func mostFrequentDayOfMonth(invoices []ledger.Invoice, vendors []string) map[string]int {
	byVendor := make(map[string][]int)
	for _, inv := range invoices {
		byVendor[inv.CanonicalVendorID] = append(byVendor[inv.CanonicalVendorID], calendar.DayOfMonth(*inv.InvoiceDate))
	}
	out := make(map[string]int, len(vendors))
	for _, vendorID := range vendors {
		out[vendorID] = aggregate.Mode(byVendor[vendorID])
	}
	return out
}

// firstInvoiceDateByPeriod returns, for one vendor, the earliest
// InvoiceDate in each period produced by truncate (calendar.MonthStart
// or calendar.QuarterStart).
func firstInvoiceDateByPeriod(invoices []ledger.Invoice, vendorID string, truncate func(time.Time) time.Time) map[time.Time]time.Time {
	out := make(map[time.Time]time.Time)
	for _, inv := range invoices {
		if inv.CanonicalVendorID != vendorID {
			continue
		}
		p := truncate(*inv.InvoiceDate)
		if existing, ok := out[p]; !ok || inv.InvoiceDate.Before(existing) {
			out[p] = *inv.InvoiceDate
		}
	}
	return out
}
