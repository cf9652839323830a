package invoice

import (
	"encoding/csv"
	"io"
)

// CSVFilename is the download name of the invoice export
const CSVFilename = "invoices.csv"

// CSVHeader is the first row of every export
var CSVHeader = []string{"Invoice Number", "Client Name", "Amount", "Status", "Created Date", "Due Date"}

// ExportCSV writes a header row followed by one row per invoice, in the given order
func ExportCSV(w io.Writer, invoices []*Invoice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, inv := range invoices {
		created := ""
		if !inv.CreatedAt.IsZero() {
			created = inv.CreatedAt.Format(DueDateLayout)
		}
		row := []string{
			inv.InvoiceNumber,
			inv.ClientName,
			inv.Amount.StringFixed(2),
			string(inv.Status),
			created,
			inv.DueDate,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
