package glean

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

func TestEngineRunAssignsSequentialGleanIDsInDetectorOrder(t *testing.T) {
	invoices := []ledger.Invoice{
		{InvoiceID: "I1", CanonicalVendorID: "V1", InvoiceDate: mustDatePtr(t, "2020-01-01")},
		{InvoiceID: "I2", CanonicalVendorID: "V1", InvoiceDate: mustDatePtr(t, "2020-05-15")},
	}

	engine := NewEngine(DefaultThresholds(), zerolog.Nop())
	gleans := engine.Run(invoices, nil)

	require.NotEmpty(t, gleans)
	for i, g := range gleans {
		assert.Equal(t, i, g.GleanID)
	}
}

func TestEngineRunScopeDiscipline(t *testing.T) {
	invoices := []ledger.Invoice{
		{InvoiceID: "I1", CanonicalVendorID: "V1", InvoiceDate: mustDatePtr(t, "2020-01-01"), PeriodEndDate: mustDatePtr(t, "2020-02-01")},
		{InvoiceID: "I2", CanonicalVendorID: "V1", InvoiceDate: mustDatePtr(t, "2020-05-15")},
	}
	lineItems := []ledger.LineItem{
		{InvoiceID: "I1", PeriodEndDate: mustDatePtr(t, "2020-06-01")},
	}

	engine := NewEngine(DefaultThresholds(), zerolog.Nop())
	gleans := engine.Run(invoices, lineItems)

	require.NotEmpty(t, gleans)
	for _, g := range gleans {
		if g.GleanLocation == ledger.LocationInvoice {
			assert.NotNil(t, g.InvoiceID)
		} else {
			assert.Nil(t, g.InvoiceID)
		}
	}
}

func TestEngineRunIsDeterministic(t *testing.T) {
	invoices := []ledger.Invoice{
		{InvoiceID: "I1", CanonicalVendorID: "V1", InvoiceDate: mustDatePtr(t, "2020-01-01")},
		{InvoiceID: "I2", CanonicalVendorID: "V1", InvoiceDate: mustDatePtr(t, "2020-05-15")},
		{InvoiceID: "I3", CanonicalVendorID: "V2", InvoiceDate: mustDatePtr(t, "2020-01-01")},
	}

	engine := NewEngine(DefaultThresholds(), zerolog.Nop())
	first := engine.Run(invoices, nil)
	second := engine.Run(invoices, nil)

	assert.Equal(t, first, second)
}
