// Package glean computes anomaly gleans over a vendor's invoice and
// line item history: unusual gaps since the last bill, accrual-style
// invoices that bill into the future, unusually large monthly spend,
// and invoices that are running late against a vendor's own pattern.
package glean

import (
	"github.com/rs/zerolog"

	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// Engine runs every detector over a single invoice/line-item data set
// and assigns glean IDs over the concatenated result.
type Engine struct {
	thresholds Thresholds
	log        zerolog.Logger
}

// NewEngine creates an Engine with the given thresholds.
func NewEngine(thresholds Thresholds, log zerolog.Logger) *Engine {
	return &Engine{thresholds: thresholds, log: log}
}

// Run executes the five detectors in a fixed order - vendor-not-seen,
// accrual alert, large month increase, missing invoice monthly, missing
// invoice quarterly - and returns their concatenated output with
// zero-based glean_id assigned over the whole table.
func (e *Engine) Run(invoices []ledger.Invoice, lineItems []ledger.LineItem) []ledger.Glean {
	var gleans []ledger.Glean
	gleans = append(gleans, vendorNotSeen(invoices, e.thresholds)...)
	gleans = append(gleans, accrualAlert(invoices, lineItems, e.thresholds)...)
	gleans = append(gleans, largeMonthIncrease(invoices, e.thresholds)...)
	gleans = append(gleans, missingInvoiceMonthly(invoices, e.thresholds)...)
	gleans = append(gleans, missingInvoiceQuarterly(invoices, e.thresholds)...)

	for i := range gleans {
		gleans[i].GleanID = i
	}

	e.log.Info().Int("glean_count", len(gleans)).Msg("glean run complete")
	return gleans
}
