// Package ledger holds the glean engine's data model and the
// ingest/egress adapters around it. Reading CSV, parsing dates, and
// writing CSV are deliberately kept out of the detector packages: they
// are external-collaborator concerns the core engine consumes already
// parsed, not part of the glean derivation logic itself.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a single vendor billing document.
type Invoice struct {
	InvoiceID         string
	CanonicalVendorID string
	InvoiceDate       *time.Time
	DueDate           *time.Time
	PeriodStartDate   *time.Time
	PeriodEndDate     *time.Time
	TotalAmount       decimal.Decimal
}

// LineItem is a component of an invoice contributing a service period.
type LineItem struct {
	InvoiceID       string
	PeriodStartDate *time.Time
	PeriodEndDate   *time.Time
}

// Location identifies whether a glean is scoped to a single invoice or
// to a vendor as a whole.
type Location int

const (
	// LocationInvoice gleans always carry a non-nil InvoiceID.
	LocationInvoice Location = 1
	// LocationVendor gleans always carry a nil InvoiceID.
	LocationVendor Location = 2
)

// Type identifies which detector raised a glean.
type Type int

const (
	TypeVendorNotSeen     Type = 1
	TypeAccrualAlert      Type = 2
	TypeLargeMonthIncrease Type = 3
	TypeMissingInvoice     Type = 4
)

// Glean is a single typed, timestamped, vendor-scoped observation
// raised by a detector.
type Glean struct {
	GleanDate         time.Time
	GleanText         string
	GleanType         Type
	GleanLocation     Location
	InvoiceID         *string
	CanonicalVendorID string
	GleanID           int
}
