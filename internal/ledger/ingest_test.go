package ledger

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/HMB-research/invoice-gleans/internal/gleanerr"
)

func TestReadInvoicesHappyPath(t *testing.T) {
	csvData := "invoice_id,canonical_vendor_id,invoice_date,due_date,period_start_date,period_end_date,total_amount\n" +
		"I1,V1,2020-01-01,2020-02-01,2020-01-01,2020-02-01,123.45\n"

	invoices, err := ReadInvoices(strings.NewReader(csvData), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	require.Equal(t, "I1", inv.InvoiceID)
	require.Equal(t, "V1", inv.CanonicalVendorID)
	require.NotNil(t, inv.InvoiceDate)
	require.True(t, inv.TotalAmount.Equal(mustDecimal(t, "123.45")))
}

func TestReadInvoicesMissingColumnIsSchemaError(t *testing.T) {
	csvData := "invoice_id,canonical_vendor_id,invoice_date\nI1,V1,2020-01-01\n"
	_, err := ReadInvoices(strings.NewReader(csvData), zerolog.Nop())
	require.Error(t, err)
	require.True(t, gleanerr.IsSchema(err))
}

func TestReadInvoicesBadDateRetainsRowAsNull(t *testing.T) {
	csvData := "invoice_id,canonical_vendor_id,invoice_date,due_date,period_start_date,period_end_date,total_amount\n" +
		"I1,V1,not-a-date,,,,100\n"

	invoices, err := ReadInvoices(strings.NewReader(csvData), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	require.Nil(t, invoices[0].InvoiceDate)
}

func TestReadInvoicesBadAmountIsFatal(t *testing.T) {
	csvData := "invoice_id,canonical_vendor_id,invoice_date,due_date,period_start_date,period_end_date,total_amount\n" +
		"I1,V1,2020-01-01,,,,not-a-number\n"
	_, err := ReadInvoices(strings.NewReader(csvData), zerolog.Nop())
	require.Error(t, err)
}

func TestReadLineItems(t *testing.T) {
	csvData := "invoice_id,period_start_date,period_end_date\nI1,2020-01-01,2020-06-01\n"
	items, err := ReadLineItems(strings.NewReader(csvData), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "I1", items[0].InvoiceID)
	require.NotNil(t, items[0].PeriodEndDate)
}
