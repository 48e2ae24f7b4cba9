package ledger

import (
	"encoding/csv"
	"io"
	"strconv"
)

// gleanColumns is the fixed output column order for the glean table.
var gleanColumns = []string{
	"glean_date", "glean_text", "glean_type", "glean_location",
	"invoice_id", "canonical_vendor_id", "glean_id",
}

// Writer writes a glean table to CSV in the fixed column order.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteGleans writes the header followed by one row per glean, in the
// order given, and flushes the underlying writer.
func (w *Writer) WriteGleans(gleans []Glean) error {
	if err := w.csv.Write(gleanColumns); err != nil {
		return err
	}
	for _, g := range gleans {
		if err := w.csv.Write(gleanRow(g)); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

func gleanRow(g Glean) []string {
	invoiceID := ""
	if g.InvoiceID != nil {
		invoiceID = *g.InvoiceID
	}
	return []string{
		g.GleanDate.Format(dateLayout),
		g.GleanText,
		strconv.Itoa(int(g.GleanType)),
		strconv.Itoa(int(g.GleanLocation)),
		invoiceID,
		g.CanonicalVendorID,
		strconv.Itoa(g.GleanID),
	}
}
