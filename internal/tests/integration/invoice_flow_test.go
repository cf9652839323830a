package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/pkg/client"
)

func draft(clientName string) client.InvoiceDraft {
	return client.InvoiceDraft{
		Client:  client.InvoiceClient{Name: clientName, Email: "billing@example.com"},
		DueDate: "2030-01-31",
		Items: []client.LineItem{
			{Description: "Design", Quantity: 2, Rate: decimal.RequireFromString("150.50")},
			{Description: "Hosting", Quantity: 1, Rate: decimal.RequireFromString("99.99")},
		},
		TaxRate: decimal.RequireFromString("8.5"),
	}
}

func TestInvoiceFlow_CalculateSaveExport(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	c := a.register(t, "owner@example.com")

	totals, err := c.Invoices().Calculate(ctx, draft("Acme Corp"))
	require.NoError(t, err)
	assert.Equal(t, "400.99", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "34.08", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "435.07", totals.Total.StringFixed(2))

	inv, err := c.Invoices().Create(ctx, draft("Acme Corp"))
	require.NoError(t, err)
	assert.True(t, inv.Amount.Equal(totals.Total))
	assert.Equal(t, "draft", inv.Status)
	assert.NotEmpty(t, inv.InvoiceNumber)

	require.NoError(t, c.Invoices().UpdateStatus(ctx, inv.ID, "paid"))
	got, err := c.Invoices().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)

	file, err := c.Invoices().ExportCSV(ctx)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "Acme Corp")
	assert.Contains(t, rows[1], "435.07")

	doc, err := c.Invoices().PDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "435.07", stats.Revenue.StringFixed(2))
	assert.Equal(t, 1, stats.Invoices)
}

func TestInvoiceFlow_FreePlanLimits(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	c := a.register(t, "owner@example.com")

	var last *client.Invoice
	for i := 0; i < 5; i++ {
		inv, err := c.Invoices().Create(ctx, draft("Client"))
		require.NoError(t, err, "invoice %d", i+1)
		last = inv
	}

	_, err := c.Invoices().Create(ctx, draft("One too many"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsFeatureLimit())
	assert.Equal(t, "FEATURE_LIMIT", apiErr.Code)

	invoices, err := c.Invoices().List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, invoices, 5, "a denied save must not persist anything")

	for i := 0; i < 3; i++ {
		_, err := c.Invoices().PDF(ctx, last.ID)
		require.NoError(t, err, "export %d", i+1)
	}
	_, err = c.Invoices().PDF(ctx, last.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsFeatureLimit())

	st, err := c.Tier().Status(ctx)
	require.NoError(t, err)
	used := map[string]int64{}
	for _, f := range st.Features {
		used[f.Feature] = f.Used
	}
	assert.Equal(t, int64(5), used["invoices"])
	assert.Equal(t, int64(3), used["pdfExports"])

	allowed, err := c.Tier().CanUse(ctx, "invoices")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestInvoiceFlow_UsersAreIsolated(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	alice := a.register(t, "alice@example.com")
	bob := a.register(t, "bob@example.com")

	inv, err := alice.Invoices().Create(ctx, draft("Alice's client"))
	require.NoError(t, err)

	_, err = bob.Invoices().Get(ctx, inv.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())

	list, err := bob.Invoices().List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceFlow_OverdueSweep(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	c := a.register(t, "owner@example.com")

	past := draft("Late Payer")
	past.DueDate = "2020-01-01"
	inv, err := c.Invoices().Create(ctx, past)
	require.NoError(t, err)
	require.NoError(t, c.Invoices().UpdateStatus(ctx, inv.ID, "sent"))

	a.promote(t, "owner@example.com")
	resp := a.do(t, http.MethodPost, "/api/v1/admin/jobs/overdue_sweep/run", c.GetToken(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Status   string `json:"status"`
			Affected int64  `json:"affected"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "completed", body.Data.Status)
	assert.Equal(t, int64(1), body.Data.Affected)

	got, err := c.Invoices().Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "overdue", got.Status)
}
