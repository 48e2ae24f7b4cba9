package glean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

func TestAccrualAlertFiresOnFutureLineItemPeriod(t *testing.T) {
	invoices := []ledger.Invoice{
		{
			InvoiceID:         "I1",
			CanonicalVendorID: "V1",
			InvoiceDate:       mustDatePtr(t, "2020-01-01"),
			PeriodEndDate:     mustDatePtr(t, "2020-02-01"),
		},
	}
	lineItems := []ledger.LineItem{
		{InvoiceID: "I1", PeriodEndDate: mustDatePtr(t, "2020-06-01")},
	}

	gleans := accrualAlert(invoices, lineItems, DefaultThresholds())

	require.Len(t, gleans, 1)
	g := gleans[0]
	assert.Equal(t, mustDate(t, "2020-01-01"), g.GleanDate)
	assert.Contains(t, g.GleanText, "2020-06-01")
	require.NotNil(t, g.InvoiceID)
	assert.Equal(t, "I1", *g.InvoiceID)
	assert.Equal(t, ledger.TypeAccrualAlert, g.GleanType)
	assert.Equal(t, ledger.LocationInvoice, g.GleanLocation)
}

func TestAccrualAlertSkipsWithinWindow(t *testing.T) {
	invoices := []ledger.Invoice{
		{
			InvoiceID:         "I1",
			CanonicalVendorID: "V1",
			InvoiceDate:       mustDatePtr(t, "2020-01-01"),
			PeriodEndDate:     mustDatePtr(t, "2020-02-01"),
		},
	}
	gleans := accrualAlert(invoices, nil, DefaultThresholds())
	assert.Empty(t, gleans)
}

func TestAccrualAlertSkipsWithNoPeriodEndAnywhere(t *testing.T) {
	invoices := []ledger.Invoice{
		{InvoiceID: "I1", CanonicalVendorID: "V1", InvoiceDate: mustDatePtr(t, "2020-01-01")},
	}
	gleans := accrualAlert(invoices, nil, DefaultThresholds())
	assert.Empty(t, gleans)
}
