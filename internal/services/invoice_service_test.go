package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/domain/tier"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/testutil"
)

type invoiceFixture struct {
	svc      invoice.Service
	repo     *testutil.MockInvoiceRepository
	usage    *testutil.MockUsageRepository
	renderer *testutil.MockRenderer
	archive  *testutil.MockArchive
	user     *user.User
}

func newInvoiceFixture(plan tier.ID) *invoiceFixture {
	log := testutil.NewLogger()
	users := testutil.NewMockUserRepository()
	f := &invoiceFixture{
		repo:     testutil.NewMockInvoiceRepository(),
		usage:    testutil.NewMockUsageRepository(),
		renderer: &testutil.MockRenderer{},
		archive:  &testutil.MockArchive{},
		user:     users.AddUser(&user.User{Email: "owner@example.com", Tier: plan}),
	}
	tiers := NewTierService(users, f.usage, nil, 12, log)
	f.svc = NewInvoiceService(f.repo, tiers, f.renderer, f.archive, "INV-", log)
	return f
}

func (f *invoiceFixture) used(feature tier.Feature) int64 {
	u, _ := f.usage.Get(context.Background(), f.user.ID, tier.Period(time.Now()))
	return u[feature]
}

func sampleDraft() *invoice.Draft {
	d := invoice.NewDraft(decimal.RequireFromString("8.5"))
	d.Client = invoice.Client{Name: "Acme Corp", Email: "billing@acme.test"}
	d.Items = []invoice.LineItem{
		invoice.NewLineItem("Design", 2, decimal.RequireFromString("150.50")),
		invoice.NewLineItem("Hosting", 1, decimal.RequireFromString("99.99")),
	}
	return d
}

func TestInvoiceService_Save(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	ctx := context.Background()

	inv, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)

	assert.NotZero(t, inv.ID)
	assert.True(t, strings.HasPrefix(inv.InvoiceNumber, "INV-"))
	assert.Equal(t, invoice.StatusDraft, inv.Status)
	assert.True(t, inv.Amount.Equal(decimal.RequireFromString("435.07")), "amount %s", inv.Amount)
	assert.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("34.08")), "tax %s", inv.TaxAmount)
	assert.Equal(t, f.user.ID, inv.UserID)
	assert.Equal(t, int64(1), f.used(tier.FeatureInvoices))
}

func TestInvoiceService_Save_KeepsGivenNumber(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	d := sampleDraft()
	d.InvoiceNumber = " 2026-0042 "

	inv, err := f.svc.Save(context.Background(), f.user.ID, d)
	require.NoError(t, err)
	assert.Equal(t, "2026-0042", inv.InvoiceNumber)
}

func TestInvoiceService_Save_ValidationSkipsStore(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	d := sampleDraft()
	d.Client.Name = ""

	_, err := f.svc.Save(context.Background(), f.user.ID, d)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.Empty(t, f.repo.Invoices)
	assert.Zero(t, f.usage.Increments)
}

func TestInvoiceService_Save_GateDenied(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	f.usage.Set(f.user.ID, tier.Period(time.Now()), tier.FeatureInvoices, 5)

	_, err := f.svc.Save(context.Background(), f.user.ID, sampleDraft())
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeFeatureLimit, appErr.Code)
	assert.Equal(t, 402, appErr.StatusCode)
	assert.Empty(t, f.repo.Invoices)
	assert.Zero(t, f.usage.Increments)
}

func TestInvoiceService_Save_UnlimitedPlan(t *testing.T) {
	f := newInvoiceFixture(tier.Professional)
	f.usage.Set(f.user.ID, tier.Period(time.Now()), tier.FeatureInvoices, 1000)

	_, err := f.svc.Save(context.Background(), f.user.ID, sampleDraft())
	assert.NoError(t, err)
}

func TestInvoiceService_Save_StoreFailure(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	f.repo.CreateError = stderrors.New("duplicate key value violates unique constraint")

	_, err := f.svc.Save(context.Background(), f.user.ID, sampleDraft())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodePersistence))
	assert.Equal(t, "duplicate key value violates unique constraint", errors.UserMessage(err))
	assert.Zero(t, f.usage.Increments)
}

func TestInvoiceService_Save_UsageFailureKeepsInvoice(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	f.usage.IncrementError = stderrors.New("counter store down")

	inv, err := f.svc.Save(context.Background(), f.user.ID, sampleDraft())
	require.NoError(t, err)
	assert.Len(t, f.repo.Invoices, 1)
	assert.NotZero(t, inv.ID)
}

func TestInvoiceService_Save_NotAuthenticated(t *testing.T) {
	f := newInvoiceFixture(tier.Free)

	_, err := f.svc.Save(context.Background(), 0, sampleDraft())
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}

func TestInvoiceService_List(t *testing.T) {
	f := newInvoiceFixture(tier.Business)
	ctx := context.Background()

	empty, err := f.svc.List(ctx, f.user.ID, invoice.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)
	second, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)

	list, err := f.svc.List(ctx, f.user.ID, invoice.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	_, err = f.svc.List(ctx, f.user.ID, invoice.Filter{Status: "archived"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))
}

func TestInvoiceService_List_FailureReturnsEmptySlice(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	f.repo.ListError = stderrors.New("connection reset")

	list, err := f.svc.List(context.Background(), f.user.ID, invoice.Filter{})
	require.Error(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.True(t, errors.HasCode(err, errors.ErrCodePersistence))

	list, err = f.svc.List(context.Background(), 0, invoice.Filter{})
	assert.NotNil(t, list)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}

func TestInvoiceService_Update(t *testing.T) {
	f := newInvoiceFixture(tier.Business)
	ctx := context.Background()
	saved, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)

	d := saved.Draft()
	d.InvoiceNumber = ""
	d.TaxRate = decimal.Zero
	d.Items = []invoice.LineItem{{Description: "Retainer", Quantity: 3, Rate: decimal.NewFromInt(100)}}

	updated, err := f.svc.Update(ctx, f.user.ID, saved.ID, d)
	require.NoError(t, err)
	assert.Equal(t, saved.InvoiceNumber, updated.InvoiceNumber)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(300)))
	assert.True(t, updated.Items[0].Amount.Equal(decimal.NewFromInt(300)))

	_, err = f.svc.Update(ctx, f.user.ID, 999, sampleDraft())
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestInvoiceService_UpdateKeepsStoreErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantCode   string
		wantStatus int
	}{
		{"deleted between read and write", errors.NotFound("Invoice"), errors.ErrCodeNotFound, 404},
		{"store failure", errors.DatabaseError("Failed to update invoice", stderrors.New("disk full")), errors.ErrCodePersistence, 500},
		{"driver error", stderrors.New("connection reset"), errors.ErrCodePersistence, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInvoiceFixture(tier.Business)
			ctx := context.Background()
			saved, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
			require.NoError(t, err)

			f.repo.UpdateError = tt.repoErr
			_, err = f.svc.Update(ctx, f.user.ID, saved.ID, sampleDraft())
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
		})
	}
}

func TestInvoiceService_UpdateStatus(t *testing.T) {
	f := newInvoiceFixture(tier.Business)
	ctx := context.Background()
	saved, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(ctx, f.user.ID, saved.ID, invoice.StatusSent))
	got, err := f.svc.Get(ctx, f.user.ID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusSent, got.Status)

	err = f.svc.UpdateStatus(ctx, f.user.ID, saved.ID, "void")
	assert.True(t, errors.HasCode(err, errors.ErrCodeBadRequest))

	err = f.svc.UpdateStatus(ctx, f.user.ID+1, saved.ID, invoice.StatusPaid)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestInvoiceService_Delete(t *testing.T) {
	f := newInvoiceFixture(tier.Business)
	ctx := context.Background()
	saved, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, f.user.ID, saved.ID))
	_, err = f.svc.Get(ctx, f.user.ID, saved.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestInvoiceService_ExportCSV(t *testing.T) {
	f := newInvoiceFixture(tier.Business)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportCSV(ctx, f.user.ID, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Invoice Number,Client Name,Amount,Status,Created Date,Due Date", lines[0])
	assert.Contains(t, lines[1], ",Acme Corp,435.07,draft,")
}

func TestInvoiceService_ExportPDF(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	ctx := context.Background()
	d := sampleDraft()
	d.InvoiceNumber = "INV-7"
	saved, err := f.svc.Save(ctx, f.user.ID, d)
	require.NoError(t, err)

	doc, err := f.svc.ExportPDF(ctx, f.user.ID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "invoice-INV-7.pdf", doc.Filename)
	assert.Equal(t, PDFContentType, doc.ContentType)
	assert.Equal(t, "invoices/invoice-INV-7.pdf", doc.ArchiveKey)
	assert.NotEmpty(t, doc.Data)
	assert.Equal(t, int64(1), f.used(tier.FeaturePDFExports))
	require.Len(t, f.renderer.Rendered, 1)
	assert.Equal(t, saved.ID, f.renderer.Rendered[0].ID)
}

func TestInvoiceService_ExportPDF_GateDenied(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	ctx := context.Background()
	saved, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)
	f.usage.Set(f.user.ID, tier.Period(time.Now()), tier.FeaturePDFExports, 3)

	_, err = f.svc.ExportPDF(ctx, f.user.ID, saved.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFeatureLimit))
	assert.Empty(t, f.renderer.Rendered)
	assert.Equal(t, int64(3), f.used(tier.FeaturePDFExports))
}

func TestInvoiceService_ExportPDF_RenderFailure(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	ctx := context.Background()
	saved, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)
	f.renderer.Err = stderrors.New("font missing")

	_, err = f.svc.ExportPDF(ctx, f.user.ID, saved.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
	assert.Zero(t, f.used(tier.FeaturePDFExports))
}

func TestInvoiceService_ExportPDF_ArchiveFailureIsNotFatal(t *testing.T) {
	f := newInvoiceFixture(tier.Free)
	ctx := context.Background()
	saved, err := f.svc.Save(ctx, f.user.ID, sampleDraft())
	require.NoError(t, err)
	f.archive.Err = errors.StorageError("Failed to archive", stderrors.New("bucket missing"))

	doc, err := f.svc.ExportPDF(ctx, f.user.ID, saved.ID)
	require.NoError(t, err)
	assert.Empty(t, doc.ArchiveKey)
	assert.Equal(t, int64(1), f.used(tier.FeaturePDFExports))
}

func TestInvoiceService_PreviewPDF(t *testing.T) {
	f := newInvoiceFixture(tier.Free)

	doc, err := f.svc.PreviewPDF(context.Background(), f.user.ID, sampleDraft())
	require.NoError(t, err)
	assert.Equal(t, "invoice-draft.pdf", doc.Filename)
	assert.Empty(t, f.repo.Invoices)
	assert.Equal(t, int64(1), f.used(tier.FeaturePDFExports))
}

func TestInvoiceService_MarkOverdue(t *testing.T) {
	f := newInvoiceFixture(tier.Business)
	ctx := context.Background()

	d := sampleDraft()
	d.DueDate = "2026-01-10"
	past, err := f.svc.Save(ctx, f.user.ID, d)
	require.NoError(t, err)
	require.NoError(t, f.svc.UpdateStatus(ctx, f.user.ID, past.ID, invoice.StatusSent))

	d = sampleDraft()
	d.DueDate = "2026-03-01"
	future, err := f.svc.Save(ctx, f.user.ID, d)
	require.NoError(t, err)
	require.NoError(t, f.svc.UpdateStatus(ctx, f.user.ID, future.ID, invoice.StatusSent))

	n, err := f.svc.MarkOverdue(ctx, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := f.svc.Get(ctx, f.user.ID, past.ID)
	assert.Equal(t, invoice.StatusOverdue, got.Status)
	got, _ = f.svc.Get(ctx, f.user.ID, future.ID)
	assert.Equal(t, invoice.StatusSent, got.Status)
}
