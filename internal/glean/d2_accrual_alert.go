package glean

import (
	"fmt"
	"time"

	"github.com/HMB-research/invoice-gleans/internal/aggregate"
	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// accrualAlert is D2: for each invoice, latest_period_end_date is the
// maximum across the invoice's own period_end_date and the
// period_end_date of every line item joined to it by invoice_id. A
// glean fires when that date is more than thresholds.VendorGapDays
// days after the invoice date. Invoices without line items still
// participate using only their own period_end_date; an invoice with no
// period end date anywhere (on itself or its line items) never fires.
func accrualAlert(invoices []ledger.Invoice, lineItems []ledger.LineItem, t Thresholds) []ledger.Glean {
	lineItemsByInvoice := make(map[string][]ledger.LineItem)
	for _, li := range lineItems {
		lineItemsByInvoice[li.InvoiceID] = append(lineItemsByInvoice[li.InvoiceID], li)
	}

	var out []ledger.Glean
	for _, inv := range invoices {
		if inv.InvoiceDate == nil {
			continue
		}

		candidates := make([]*time.Time, 0, 1+len(lineItemsByInvoice[inv.InvoiceID]))
		candidates = append(candidates, inv.PeriodEndDate)
		for _, li := range lineItemsByInvoice[inv.InvoiceID] {
			candidates = append(candidates, li.PeriodEndDate)
		}
		latest := aggregate.MaxTime(candidates...)
		if latest == nil {
			continue
		}

		gapDays := int(latest.Sub(*inv.InvoiceDate).Hours() / 24)
		if gapDays <= t.VendorGapDays {
			continue
		}

		invoiceID := inv.InvoiceID
		out = append(out, ledger.Glean{
			GleanDate: *inv.InvoiceDate,
			GleanText: fmt.Sprintf(
				"Line items from vendor %s in this invoice cover future periods (through %s)",
				inv.CanonicalVendorID, latest.Format(dateLayout)),
			GleanType:         ledger.TypeAccrualAlert,
			GleanLocation:     ledger.LocationInvoice,
			InvoiceID:         &invoiceID,
			CanonicalVendorID: inv.CanonicalVendorID,
		})
	}

	return out
}
