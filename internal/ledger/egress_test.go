package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteGleansColumnOrderAndEmptyInvoiceID(t *testing.T) {
	vendorGlean := Glean{
		GleanDate:         time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC),
		GleanText:         "some vendor-scoped text",
		GleanType:         TypeLargeMonthIncrease,
		GleanLocation:     LocationVendor,
		InvoiceID:         nil,
		CanonicalVendorID: "V1",
		GleanID:           0,
	}
	invID := "I1"
	invoiceGlean := Glean{
		GleanDate:         time.Date(2020, time.May, 15, 0, 0, 0, 0, time.UTC),
		GleanText:         "some invoice-scoped text",
		GleanType:         TypeVendorNotSeen,
		GleanLocation:     LocationInvoice,
		InvoiceID:         &invID,
		CanonicalVendorID: "V1",
		GleanID:           1,
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteGleans([]Glean{vendorGlean, invoiceGlean}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "glean_date,glean_text,glean_type,glean_location,invoice_id,canonical_vendor_id,glean_id", lines[0])
	require.Equal(t, "2020-04-01,some vendor-scoped text,3,2,,V1,0", lines[1])
	require.Equal(t, "2020-05-15,some invoice-scoped text,1,1,I1,V1,1", lines[2])
}
