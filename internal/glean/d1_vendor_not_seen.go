package glean

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HMB-research/invoice-gleans/internal/aggregate"
	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// vendorNotSeen is D1: for each vendor, sort invoices ascending by
// invoice_date and compute the consecutive gap in days between
// successive invoices. A gap strictly greater than thresholds.VendorGapDays
// fires one invoice-scoped glean on the later invoice.
//
// Invoices with a nil InvoiceDate are excluded: the gap computation
// needs a real date to sort and diff on.
func vendorNotSeen(invoices []ledger.Invoice, t Thresholds) []ledger.Glean {
	byVendor := make(map[string][]ledger.Invoice)
	for _, inv := range invoices {
		if inv.InvoiceDate == nil {
			continue
		}
		byVendor[inv.CanonicalVendorID] = append(byVendor[inv.CanonicalVendorID], inv)
	}

	var out []ledger.Glean
	for _, vendorID := range sortedKeys(byVendor) {
		vendorInvoices := byVendor[vendorID]
		sort.SliceStable(vendorInvoices, func(i, j int) bool {
			return vendorInvoices[i].InvoiceDate.Before(*vendorInvoices[j].InvoiceDate)
		})

		dates := make([]time.Time, len(vendorInvoices))
		for i, inv := range vendorInvoices {
			dates[i] = *inv.InvoiceDate
		}
		gaps := aggregate.Diff(dates)

		for i, gap := range gaps {
			if gap <= t.VendorGapDays {
				continue
			}
			inv := vendorInvoices[i]
			invoiceID := inv.InvoiceID
			months := roundHalfAwayFromZero(
				decimal.NewFromInt(int64(gap)).Div(decimal.NewFromInt(30)), 2)
			out = append(out, ledger.Glean{
				GleanDate:         *inv.InvoiceDate,
				GleanText:         fmt.Sprintf("First new bill in %s months from vendor %s", formatAmount(months), vendorID),
				GleanType:         ledger.TypeVendorNotSeen,
				GleanLocation:     ledger.LocationInvoice,
				InvoiceID:         &invoiceID,
				CanonicalVendorID: vendorID,
			})
		}
	}
	return out
}

// sortedKeys returns the keys of m sorted ascending, giving every
// detector a deterministic vendor iteration order.
func sortedKeys(m map[string][]ledger.Invoice) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
