package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/bizdesk/internal/api/middleware"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
	"github.com/pratik-mahalle/bizdesk/internal/repository/memory"
	"github.com/pratik-mahalle/bizdesk/internal/services"
	"github.com/pratik-mahalle/bizdesk/internal/testutil"
)

// fixture wires the real services over a seeded in-memory store
type fixture struct {
	store    *memory.Store
	user     *user.User
	renderer *testutil.MockRenderer
	archive  *testutil.MockArchive
	invoices *InvoiceHandler
	tiers    *TierHandler
	leads    *LeadHandler
	tasks    *TaskHandler
	team     *TeamHandler
	campaign *CampaignHandler
	posts    *PostHandler
	payments *PaymentHandler
	folio    *PortfolioHandler
	stats    *StatsHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	u, err := store.SeedDemo(ctx, "unused-hash", time.Now().UTC())
	if err != nil {
		t.Fatalf("seed demo data: %v", err)
	}

	log := testutil.NewLogger()
	val := validator.New()
	renderer := &testutil.MockRenderer{}
	archive := &testutil.MockArchive{}

	userSvc := services.NewUserService(store.Users, 4, log)
	tierSvc := services.NewTierService(store.Users, store.Usage, store.Counters(), 12, log)
	invoiceSvc := services.NewInvoiceService(store.Invoices, tierSvc, renderer, archive, "INV-", log)

	return &fixture{
		store:    store,
		user:     u,
		renderer: renderer,
		archive:  archive,
		invoices: NewInvoiceHandler(invoiceSvc, log, val),
		tiers:    NewTierHandler(tierSvc, log),
		leads:    NewLeadHandler(services.NewLeadService(store.Leads, tierSvc, log), log, val),
		tasks:    NewTaskHandler(services.NewTaskService(store.Tasks, log), log, val),
		team:     NewTeamHandler(services.NewTeamService(store.Team, tierSvc, log), log, val),
		campaign: NewCampaignHandler(services.NewCampaignService(store.Campaigns, store.Posts, log), log, val),
		posts:    NewPostHandler(services.NewPostService(store.Posts, store.Campaigns, log), log, val),
		payments: NewPaymentHandler(services.NewPaymentService(store.Payments, userSvc, log), log, val),
		folio:    NewPortfolioHandler(services.NewPortfolioService(store.Portfolios, log), log, val),
		stats:    NewStatsHandler(services.NewStatsService(store.Invoices, store.Leads, store.Tasks, store.Team, store.Campaigns, log), log),
	}
}

// newRequest builds a request carrying userID (0 for anonymous) and chi URL params
func newRequest(method, target string, body interface{}, userID int64, params map[string]string) *http.Request {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

// envelope is the JSON shape every API response shares
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func idParams(id string) map[string]string {
	return map[string]string{"id": id}
}
