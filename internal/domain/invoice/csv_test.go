package invoice

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	invoices := []*Invoice{
		{
			InvoiceNumber: "INV-2",
			ClientName:    "Globex, Inc.",
			Amount:        dec("220"),
			Status:        StatusPaid,
			DueDate:       "2026-04-30",
			CreatedAt:     time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			InvoiceNumber: "INV-1",
			ClientName:    "Acme",
			Amount:        dec("15.5"),
			Status:        StatusDraft,
			CreatedAt:     time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, invoices))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Invoice Number,Client Name,Amount,Status,Created Date,Due Date", lines[0])
	assert.Equal(t, "INV-1,Acme,15.50,draft,2026-04-01,", lines[2])

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"INV-2", "Globex, Inc.", "220.00", "paid", "2026-04-02", "2026-04-30"}, records[1])
}

func TestExportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, nil))
	assert.Equal(t, "Invoice Number,Client Name,Amount,Status,Created Date,Due Date\n", buf.String())
}
