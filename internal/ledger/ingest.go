package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/HMB-research/invoice-gleans/internal/gleanerr"
)

const dateLayout = "2006-01-02"

var invoiceColumns = []string{
	"invoice_id", "canonical_vendor_id", "invoice_date", "due_date",
	"period_start_date", "period_end_date", "total_amount",
}

var lineItemColumns = []string{"invoice_id", "period_start_date", "period_end_date"}

// header indexes a CSV header row by column name and validates that
// every required column is present.
type header struct {
	index map[string]int
}

func newHeader(row []string, required []string) (header, error) {
	idx := make(map[string]int, len(row))
	for i, name := range row {
		idx[name] = i
	}
	h := header{index: idx}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return header{}, gleanerr.NewSchemaError(fmt.Sprintf("missing required column %q", col))
		}
	}
	return h, nil
}

func (h header) get(row []string, col string) string {
	i, ok := h.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseDate parses an ISO YYYY-MM-DD date. An empty value yields
// (nil, true); a non-empty but malformed value yields (nil, false), and
// the caller logs a DateParseWarning for it.
func parseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, false
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t, true
}

// ReadInvoices parses the invoice table. Every column in invoiceColumns
// is required; a missing column is a fatal SchemaError. A row whose
// date field fails to parse keeps the row, with that field set to nil,
// and logs a DateParseWarning — it is up to each detector to exclude
// rows with a nil field it needs. A malformed total_amount is fatal
// (InputParseError): unlike dates, the engine has no sound way to
// treat a missing amount as "absent" since every downstream sum and
// comparison requires a real number.
func ReadInvoices(r io.Reader, log zerolog.Logger) ([]Invoice, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headerRow, err := cr.Read()
	if err != nil {
		return nil, gleanerr.NewInputParseError("read invoice header", err)
	}
	h, err := newHeader(headerRow, invoiceColumns)
	if err != nil {
		return nil, err
	}

	var invoices []Invoice
	rowNum := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, gleanerr.NewInputParseError(fmt.Sprintf("read invoice row %d", rowNum), err)
		}
		rowNum++

		inv := Invoice{
			InvoiceID:         h.get(row, "invoice_id"),
			CanonicalVendorID: h.get(row, "canonical_vendor_id"),
		}

		inv.InvoiceDate = mustParseDate(h.get(row, "invoice_date"), "invoice_date", inv.InvoiceID, rowNum, log)
		inv.DueDate = mustParseDate(h.get(row, "due_date"), "due_date", inv.InvoiceID, rowNum, log)
		inv.PeriodStartDate = mustParseDate(h.get(row, "period_start_date"), "period_start_date", inv.InvoiceID, rowNum, log)
		inv.PeriodEndDate = mustParseDate(h.get(row, "period_end_date"), "period_end_date", inv.InvoiceID, rowNum, log)

		amountStr := h.get(row, "total_amount")
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, gleanerr.NewInputParseError(
				fmt.Sprintf("invoice row %d (%s): invalid total_amount %q", rowNum, inv.InvoiceID, amountStr), err)
		}
		inv.TotalAmount = amount

		invoices = append(invoices, inv)
	}

	return invoices, nil
}

// ReadLineItems parses the line_item table. See ReadInvoices for the
// recovery rules shared with date parsing.
func ReadLineItems(r io.Reader, log zerolog.Logger) ([]LineItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headerRow, err := cr.Read()
	if err != nil {
		return nil, gleanerr.NewInputParseError("read line_item header", err)
	}
	h, err := newHeader(headerRow, lineItemColumns)
	if err != nil {
		return nil, err
	}

	var items []LineItem
	rowNum := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, gleanerr.NewInputParseError(fmt.Sprintf("read line_item row %d", rowNum), err)
		}
		rowNum++

		li := LineItem{InvoiceID: h.get(row, "invoice_id")}
		li.PeriodStartDate = mustParseDate(h.get(row, "period_start_date"), "period_start_date", li.InvoiceID, rowNum, log)
		li.PeriodEndDate = mustParseDate(h.get(row, "period_end_date"), "period_end_date", li.InvoiceID, rowNum, log)
		items = append(items, li)
	}

	return items, nil
}

func mustParseDate(value, column, invoiceID string, rowNum int, log zerolog.Logger) *time.Time {
	t, ok := parseDate(value)
	if !ok {
		log.Warn().
			Str("event", "date_parse_warning").
			Int("row", rowNum).
			Str("invoice_id", invoiceID).
			Str("column", column).
			Str("value", value).
			Msg("unparseable date, row retained with null field")
	}
	return t
}
