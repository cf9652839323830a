package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/bizdesk/internal/api/handlers"
	"github.com/pratik-mahalle/bizdesk/internal/api/router"
	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/export/pdf"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/validator"
	"github.com/pratik-mahalle/bizdesk/internal/repository/memory"
	"github.com/pratik-mahalle/bizdesk/internal/services"
	"github.com/pratik-mahalle/bizdesk/internal/testutil"
	"github.com/pratik-mahalle/bizdesk/internal/worker"
	"github.com/pratik-mahalle/bizdesk/pkg/client"
)

// app is a running server over an empty in-memory store
type app struct {
	server *httptest.Server
	store  *memory.Store
}

func newApp(t *testing.T) *app {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173"},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-key-for-testing-only",
			BCryptCost:         4,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Storage: config.StorageConfig{DataMode: config.DataModeDemo},
		Jobs: config.JobsConfig{
			OverdueSweepSchedule: "0 1 * * *",
			UsagePruneSchedule:   "30 2 1 * *",
			UsageRetentionMonths: 12,
		},
	}

	store := memory.NewStore()
	log := testutil.NewLogger()
	val := validator.New()

	userSvc := services.NewUserService(store.Users, cfg.Auth.BCryptCost, log)
	tierSvc := services.NewTierService(store.Users, store.Usage, store.Counters(), cfg.Jobs.UsageRetentionMonths, log)
	invoiceSvc := services.NewInvoiceService(store.Invoices, tierSvc, pdf.NewRenderer(), nil, "INV-", log)

	scheduler := worker.NewScheduler(time.Minute, log)
	require.NoError(t, worker.RegisterDefaults(scheduler, cfg.Jobs, invoiceSvc, tierSvc))

	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(map[string]handlers.Pinger{}, cfg.Storage.DataMode, log),
		Auth:      handlers.NewAuthHandler(userSvc, cfg, log, val),
		Invoice:   handlers.NewInvoiceHandler(invoiceSvc, log, val),
		Tier:      handlers.NewTierHandler(tierSvc, log),
		Lead:      handlers.NewLeadHandler(services.NewLeadService(store.Leads, tierSvc, log), log, val),
		Task:      handlers.NewTaskHandler(services.NewTaskService(store.Tasks, log), log, val),
		Team:      handlers.NewTeamHandler(services.NewTeamService(store.Team, tierSvc, log), log, val),
		Campaign:  handlers.NewCampaignHandler(services.NewCampaignService(store.Campaigns, store.Posts, log), log, val),
		Post:      handlers.NewPostHandler(services.NewPostService(store.Posts, store.Campaigns, log), log, val),
		Payment:   handlers.NewPaymentHandler(services.NewPaymentService(store.Payments, userSvc, log), log, val),
		Portfolio: handlers.NewPortfolioHandler(services.NewPortfolioService(store.Portfolios, log), log, val),
		Stats:     handlers.NewStatsHandler(services.NewStatsService(store.Invoices, store.Leads, store.Tasks, store.Team, store.Campaigns, log), log),
		Admin:     handlers.NewAdminHandler(userSvc, scheduler, log),
	}

	srv := httptest.NewServer(router.New(cfg, log, router.Deps{Users: store.Users}, h))
	t.Cleanup(srv.Close)

	return &app{server: srv, store: store}
}

// register signs up a fresh account and returns a client logged in as it
func (a *app) register(t *testing.T, email string) *client.Client {
	t.Helper()
	c := client.NewClient(client.Config{BaseURL: a.server.URL})
	_, err := c.Register(context.Background(), client.RegisterRequest{
		Email:    email,
		Password: "correct-horse-battery",
		Name:     "Test Owner",
	})
	require.NoError(t, err)
	require.NotEmpty(t, c.GetToken())
	return c
}

// promote makes an existing account an admin
func (a *app) promote(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	u, err := a.store.Users.GetByEmail(ctx, email)
	require.NoError(t, err)
	u.Role = user.RoleAdmin
	require.NoError(t, a.store.Users.Update(ctx, u))
}

// do sends a raw JSON request with a bearer token
func (a *app) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
