package glean

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// decimalHundred is reused by every percentage calculation.
var decimalHundred = decimal.NewFromInt(100)

// filterDated returns the invoices with a non-nil InvoiceDate, the
// only ones the monthly/quarterly grid detectors can place on a
// calendar.
func filterDated(invoices []ledger.Invoice) []ledger.Invoice {
	out := make([]ledger.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.InvoiceDate != nil {
			out = append(out, inv)
		}
	}
	return out
}

// dateBounds returns the earliest and latest InvoiceDate in invoices.
// Callers must ensure invoices is non-empty and pre-filtered by
// filterDated.
func dateBounds(invoices []ledger.Invoice) (min, max time.Time) {
	min, max = *invoices[0].InvoiceDate, *invoices[0].InvoiceDate
	for _, inv := range invoices[1:] {
		d := *inv.InvoiceDate
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max
}

// vendorIDs returns the distinct CanonicalVendorID values in invoices,
// sorted, giving every detector a deterministic vendor iteration order.
func vendorIDs(invoices []ledger.Invoice) []string {
	seen := make(map[string]struct{})
	for _, inv := range invoices {
		seen[inv.CanonicalVendorID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
